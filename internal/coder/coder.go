package coder

import (
	"encoding/binary"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

// Anchor sighashes: sha256("global:<instruction>")[:8]
var (
	InstructionInitAccount    = bin.TypeID([8]byte{169, 188, 158, 199, 9, 151, 101, 125})
	InstructionSwap           = bin.TypeID([8]byte{248, 198, 158, 145, 225, 117, 135, 200})
	InstructionSwapTransitive = bin.TypeID([8]byte{129, 109, 254, 207, 31, 192, 47, 51})
	InstructionCloseAccount   = bin.TypeID([8]byte{125, 255, 149, 14, 110, 34, 72, 24})
)

type Side uint8

const (
	SideBid Side = iota
	SideAsk
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "bid"
	case SideAsk:
		return "ask"
	default:
		return "unknown"
	}
}

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "bid":
		return SideBid, nil
	case "ask":
		return SideAsk, nil
	default:
		return 0, errors.Wrapf(ErrTransmuteInvalidValue, "side %q", s)
	}
}

// ExchangeRate is the minimum rate a swap must execute at.
type ExchangeRate struct {
	Rate          uint64
	FromDecimals  uint8
	QuoteDecimals uint8
	Strict        bool
}

type InitAccount struct{}

type CloseAccount struct{}

type Swap struct {
	Side            Side
	Amount          uint64
	MinExchangeRate ExchangeRate
}

type SwapTransitive struct {
	Amount          uint64
	MinExchangeRate ExchangeRate
}

func (rate ExchangeRate) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	err = encoder.WriteUint64(rate.Rate, binary.LittleEndian)
	if err != nil {
		return err
	}
	err = encoder.WriteUint8(rate.FromDecimals)
	if err != nil {
		return err
	}
	err = encoder.WriteUint8(rate.QuoteDecimals)
	if err != nil {
		return err
	}
	return encoder.WriteBool(rate.Strict)
}

func (rate *ExchangeRate) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	rate.Rate, err = decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return err
	}
	rate.FromDecimals, err = decoder.ReadUint8()
	if err != nil {
		return err
	}
	rate.QuoteDecimals, err = decoder.ReadUint8()
	if err != nil {
		return err
	}
	rate.Strict, err = readStrictBool(decoder)
	return err
}

func (InitAccount) MarshalWithEncoder(*bin.Encoder) error    { return nil }
func (*InitAccount) UnmarshalWithDecoder(*bin.Decoder) error { return nil }

func (CloseAccount) MarshalWithEncoder(*bin.Encoder) error    { return nil }
func (*CloseAccount) UnmarshalWithDecoder(*bin.Decoder) error { return nil }

func (args Swap) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	err = encoder.WriteUint8(uint8(args.Side))
	if err != nil {
		return err
	}
	err = encoder.WriteUint64(args.Amount, binary.LittleEndian)
	if err != nil {
		return err
	}
	return args.MinExchangeRate.MarshalWithEncoder(encoder)
}

func (args *Swap) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	side, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if Side(side) != SideBid && Side(side) != SideAsk {
		return errors.Wrapf(ErrTransmuteInvalidValue, "side %d", side)
	}
	args.Side = Side(side)

	args.Amount, err = decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return err
	}
	return args.MinExchangeRate.UnmarshalWithDecoder(decoder)
}

func (args SwapTransitive) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	err = encoder.WriteUint64(args.Amount, binary.LittleEndian)
	if err != nil {
		return err
	}
	return args.MinExchangeRate.MarshalWithEncoder(encoder)
}

func (args *SwapTransitive) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	args.Amount, err = decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return err
	}
	return args.MinExchangeRate.UnmarshalWithDecoder(decoder)
}

func readStrictBool(decoder *bin.Decoder) (bool, error) {
	b, err := decoder.ReadUint8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(ErrTransmuteInvalidValue, "bool %d", b)
	}
}
