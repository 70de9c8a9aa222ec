package coder

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

// SerumSwapInstructionCoder encodes and decodes swap program instruction data.
type SerumSwapInstructionCoder struct{}

func NewSerumSwapInstructionCoder() *SerumSwapInstructionCoder {
	return &SerumSwapInstructionCoder{}
}

// Encode writes the discriminator followed by the fixed-width arguments.
func (coder *SerumSwapInstructionCoder) Encode(id bin.TypeID, args bin.BinaryMarshaler) ([]byte, error) {
	return EncodeInstructionData(id, args)
}

// Decode decodes instruction data into one of InitAccount, Swap,
// SwapTransitive or CloseAccount.
func (coder *SerumSwapInstructionCoder) Decode(data []byte) (interface{}, error) {
	return DecodeInstructionData(data)
}

func EncodeInstructionData(id bin.TypeID, args bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBorshEncoder(buf)

	if err := encoder.WriteBytes(id[:], false); err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}

	if err := args.MarshalWithEncoder(encoder); err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}

	return buf.Bytes(), nil
}

func DecodeInstructionData(data []byte) (interface{}, error) {
	decoder := bin.NewBorshDecoder(data)

	id, err := decoder.ReadTypeID()
	if err != nil {
		return nil, errors.Wrap(ErrTransmuteGuard, err.Error())
	}

	switch id {
	case InstructionInitAccount:
		var args InitAccount
		if err := decodeArgs(decoder, &args); err != nil {
			return nil, err
		}
		return args, nil
	case InstructionSwap:
		var args Swap
		if err := decodeArgs(decoder, &args); err != nil {
			return nil, err
		}
		return args, nil
	case InstructionSwapTransitive:
		var args SwapTransitive
		if err := decodeArgs(decoder, &args); err != nil {
			return nil, err
		}
		return args, nil
	case InstructionCloseAccount:
		var args CloseAccount
		if err := decodeArgs(decoder, &args); err != nil {
			return nil, err
		}
		return args, nil
	default:
		return nil, errors.Wrapf(ErrUnknownInstruction, "%x", id[:])
	}
}

func decodeArgs(decoder *bin.Decoder, args bin.BinaryUnmarshaler) error {
	if err := args.UnmarshalWithDecoder(decoder); err != nil {
		if errors.Is(err, ErrTransmuteInvalidValue) {
			return err
		}
		return errors.Wrap(ErrTransmuteGuard, err.Error())
	}

	if rem := decoder.Remaining(); rem != 0 {
		return errors.Wrapf(ErrTransmuteGuard, "%d trailing bytes", rem)
	}

	return nil
}
