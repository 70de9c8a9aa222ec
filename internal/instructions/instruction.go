package instructions

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/pkg/errors"
)

// Programs holds the program addresses an instruction is built against.
type Programs struct {
	Swap solana.PublicKey
	Dex  solana.PublicKey
}

// Instruction is a swap program instruction. Impl holds one of the argument
// types of the coder package and TypeID its discriminator.
type Instruction struct {
	bin.BaseVariant
	programID solana.PublicKey
	accounts  solana.AccountMetaSlice
}

var _ solana.Instruction = (*Instruction)(nil)

func newInstruction(programID solana.PublicKey, id bin.TypeID, args bin.BinaryMarshaler, accounts []*solana.AccountMeta) *Instruction {
	return &Instruction{
		BaseVariant: bin.BaseVariant{
			TypeID: id,
			Impl:   args,
		},
		programID: programID,
		accounts:  accounts,
	}
}

func (instruction *Instruction) ProgramID() solana.PublicKey {
	return instruction.programID
}

func (instruction *Instruction) Accounts() []*solana.AccountMeta {
	return instruction.accounts
}

func (instruction *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := instruction.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (instruction *Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	args, ok := instruction.Impl.(bin.BinaryMarshaler)
	if !ok {
		return errors.Wrapf(coder.ErrSerialization, "unsupported arguments %T", instruction.Impl)
	}

	if err := encoder.WriteBytes(instruction.TypeID[:], false); err != nil {
		return errors.Wrap(coder.ErrSerialization, err.Error())
	}

	if err := args.MarshalWithEncoder(encoder); err != nil {
		return errors.Wrap(coder.ErrSerialization, err.Error())
	}

	return nil
}
