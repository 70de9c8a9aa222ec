package coder

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

type AccountFlag uint64

const (
	AccountFlagInitialized AccountFlag = 1 << iota
	AccountFlagMarket
	AccountFlagOpenOrders
	AccountFlagRequestQueue
	AccountFlagEventQueue
	AccountFlagBids
	AccountFlagAsks
	AccountFlagDisabled
	AccountFlagClosed
	AccountFlagPermissioned
	AccountFlagCrankAuthorityRequired

	accountFlagMask = AccountFlagCrankAuthorityRequired<<1 - 1
)

func (f AccountFlag) Has(flag AccountFlag) bool {
	return f&flag == flag
}

// ParseAccountFlags rejects words carrying bits the dex does not define.
func ParseAccountFlags(word uint64) (AccountFlag, error) {
	if word&^uint64(accountFlagMask) != 0 {
		return 0, errors.Wrapf(ErrTransmuteInvalidValue, "account flags %#x", word)
	}
	return AccountFlag(word), nil
}

type MarketVersion uint8

const (
	MarketVersionV1 MarketVersion = 1
	MarketVersionV2 MarketVersion = 2
)

const (
	MarketStateV1Size         = 376
	MarketStateV2Size         = MarketStateV1Size + 3*solana.PublicKeyLength + marketStateV2ReservedSize
	marketStateV2ReservedSize = 992
)

// Market is the accessor surface shared by every market layout version.
// Fields only present in V2 require a type switch on *MarketStateV2.
type Market interface {
	Version() MarketVersion
	Header() *MarketStateV1
	CheckFlags() error
	Pubkeys(dexProgramID solana.PublicKey) (*MarketPubkeys, error)
	Marshal() []byte
}

type MarketStateV1 struct {
	AccountFlags           AccountFlag
	OwnAddress             solana.PublicKey
	VaultSignerNonce       uint64
	CoinMint               solana.PublicKey
	PcMint                 solana.PublicKey
	CoinVault              solana.PublicKey
	CoinDepositsTotal      uint64
	CoinFeesAccrued        uint64
	PcVault                solana.PublicKey
	PcDepositsTotal        uint64
	PcFeesAccrued          uint64
	PcDustThreshold        uint64
	RequestQueue           solana.PublicKey
	EventQueue             solana.PublicKey
	Bids                   solana.PublicKey
	Asks                   solana.PublicKey
	CoinLotSize            uint64
	PcLotSize              uint64
	FeeRateBps             uint64
	ReferrerRebatesAccrued uint64
}

// MarketStateV2 is the permissioned market layout. Its leading bytes are
// exactly a MarketStateV1.
type MarketStateV2 struct {
	MarketStateV1
	OpenOrdersAuthority    solana.PublicKey
	PruneAuthority         solana.PublicKey
	ConsumeEventsAuthority solana.PublicKey
	Reserved               [marketStateV2ReservedSize]byte
}

type MarketPubkeys struct {
	Market       solana.PublicKey `json:"market"`
	RequestQueue solana.PublicKey `json:"requestQueue"`
	EventQueue   solana.PublicKey `json:"eventQueue"`
	Bids         solana.PublicKey `json:"bids"`
	Asks         solana.PublicKey `json:"asks"`
	CoinMint     solana.PublicKey `json:"coinMint"`
	CoinVault    solana.PublicKey `json:"coinVault"`
	PcMint       solana.PublicKey `json:"pcMint"`
	PcVault      solana.PublicKey `json:"pcVault"`
	VaultSigner  solana.PublicKey `json:"vaultSigner"`
}

func (m *MarketStateV1) Version() MarketVersion { return MarketVersionV1 }
func (m *MarketStateV2) Version() MarketVersion { return MarketVersionV2 }

func (m *MarketStateV1) Header() *MarketStateV1 { return m }

func (m *MarketStateV1) CheckFlags() error {
	switch m.AccountFlags {
	case AccountFlagInitialized | AccountFlagMarket,
		AccountFlagInitialized | AccountFlagMarket | AccountFlagPermissioned,
		AccountFlagInitialized | AccountFlagMarket | AccountFlagPermissioned | AccountFlagCrankAuthorityRequired:
		return nil
	default:
		return errors.Wrapf(ErrInvalidMarketFlags, "flags %#x", uint64(m.AccountFlags))
	}
}

func (m *MarketStateV1) Pubkeys(dexProgramID solana.PublicKey) (*MarketPubkeys, error) {
	vaultSigner, err := VaultSignerAddress(m.OwnAddress, m.VaultSignerNonce, dexProgramID)
	if err != nil {
		return nil, err
	}

	return &MarketPubkeys{
		Market:       m.OwnAddress,
		RequestQueue: m.RequestQueue,
		EventQueue:   m.EventQueue,
		Bids:         m.Bids,
		Asks:         m.Asks,
		CoinMint:     m.CoinMint,
		CoinVault:    m.CoinVault,
		PcMint:       m.PcMint,
		PcVault:      m.PcVault,
		VaultSigner:  vaultSigner,
	}, nil
}

// VaultSignerAddress derives the program address that owns a market's vaults.
func VaultSignerAddress(market solana.PublicKey, nonce uint64, dexProgramID solana.PublicKey) (solana.PublicKey, error) {
	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, nonce)

	vaultSigner, err := solana.CreateProgramAddress([][]byte{market.Bytes(), nonceBytes}, dexProgramID)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(ErrVaultSignerDerivation, "market %s nonce %d: %v", market, nonce, err)
	}

	return vaultSigner, nil
}

// ValidateMarket checks the market flags and that the record belongs to the
// address it was fetched under.
func ValidateMarket(m Market, address solana.PublicKey) error {
	if err := m.CheckFlags(); err != nil {
		return err
	}

	if own := m.Header().OwnAddress; !own.Equals(address) {
		return errors.Wrapf(ErrMarketAddressMismatch, "record %s, fetched %s", own, address)
	}

	return nil
}

// DecodeMarket strips the account padding and decodes the market record,
// choosing the layout from the permissioned flag.
func DecodeMarket(data []byte) (Market, error) {
	inner, err := StripPadding(data)
	if err != nil {
		return nil, err
	}

	if len(inner) < wordSize {
		return nil, errors.Wrap(ErrTransmuteGuard, "missing account flags")
	}

	flags, err := ParseAccountFlags(binary.LittleEndian.Uint64(inner))
	if err != nil {
		return nil, err
	}

	if flags.Has(AccountFlagPermissioned) {
		if err := checkRecordSize(inner, MarketStateV2Size); err != nil {
			return nil, err
		}
		state, err := decodeMarketStateV2(inner)
		if err != nil {
			return nil, err
		}
		return state, nil
	}

	if err := checkRecordSize(inner, MarketStateV1Size); err != nil {
		return nil, err
	}
	state, err := decodeMarketStateV1(inner)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// EncodeMarket writes a market record back in its padded account form.
func EncodeMarket(m Market) []byte {
	return AddPadding(m.Marshal())
}

func checkRecordSize(inner []byte, size int) error {
	if len(inner) != size {
		return errors.Wrapf(ErrTransmuteGuard, "record is %d bytes, want %d", len(inner), size)
	}
	return nil
}

func decodeMarketStateV1(inner []byte) (*MarketStateV1, error) {
	r := newLayoutReader(inner)

	var state MarketStateV1
	r.readMarketStateV1(&state)
	if r.err != nil {
		return nil, r.err
	}

	return &state, nil
}

func decodeMarketStateV2(inner []byte) (*MarketStateV2, error) {
	r := newLayoutReader(inner)

	var state MarketStateV2
	r.readMarketStateV1(&state.MarketStateV1)
	state.OpenOrdersAuthority = r.key()
	state.PruneAuthority = r.key()
	state.ConsumeEventsAuthority = r.key()
	copy(state.Reserved[:], r.bytes(marketStateV2ReservedSize))
	if r.err != nil {
		return nil, r.err
	}

	return &state, nil
}

func (m *MarketStateV1) Marshal() []byte {
	buf := new(bytes.Buffer)
	w := newLayoutWriter(buf)
	w.writeMarketStateV1(m)
	return buf.Bytes()
}

func (m *MarketStateV2) Marshal() []byte {
	buf := new(bytes.Buffer)
	w := newLayoutWriter(buf)
	w.writeMarketStateV1(&m.MarketStateV1)
	w.key(m.OpenOrdersAuthority)
	w.key(m.PruneAuthority)
	w.key(m.ConsumeEventsAuthority)
	w.bytes(m.Reserved[:])
	return buf.Bytes()
}

// layoutReader reads fixed-offset little-endian fields and keeps the first
// error it sees.
type layoutReader struct {
	dec *bin.Decoder
	err error
}

func newLayoutReader(data []byte) *layoutReader {
	return &layoutReader{dec: bin.NewBinDecoder(data)}
}

func (r *layoutReader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		r.err = errors.Wrap(ErrTransmuteGuard, err.Error())
	}
	return v
}

func (r *layoutReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	b, err := r.dec.ReadNBytes(n)
	if err != nil {
		r.err = errors.Wrap(ErrTransmuteGuard, err.Error())
	}
	return b
}

func (r *layoutReader) key() solana.PublicKey {
	b := r.bytes(solana.PublicKeyLength)
	if b == nil {
		return solana.PublicKey{}
	}
	return solana.PublicKeyFromBytes(b)
}

func (r *layoutReader) readMarketStateV1(s *MarketStateV1) {
	s.AccountFlags = AccountFlag(r.u64())
	s.OwnAddress = r.key()
	s.VaultSignerNonce = r.u64()
	s.CoinMint = r.key()
	s.PcMint = r.key()
	s.CoinVault = r.key()
	s.CoinDepositsTotal = r.u64()
	s.CoinFeesAccrued = r.u64()
	s.PcVault = r.key()
	s.PcDepositsTotal = r.u64()
	s.PcFeesAccrued = r.u64()
	s.PcDustThreshold = r.u64()
	s.RequestQueue = r.key()
	s.EventQueue = r.key()
	s.Bids = r.key()
	s.Asks = r.key()
	s.CoinLotSize = r.u64()
	s.PcLotSize = r.u64()
	s.FeeRateBps = r.u64()
	s.ReferrerRebatesAccrued = r.u64()
}

// layoutWriter is the inverse of layoutReader. Writes go to a bytes.Buffer
// and cannot fail.
type layoutWriter struct {
	enc *bin.Encoder
}

func newLayoutWriter(buf *bytes.Buffer) *layoutWriter {
	return &layoutWriter{enc: bin.NewBinEncoder(buf)}
}

func (w *layoutWriter) u64(v uint64) {
	_ = w.enc.WriteUint64(v, binary.LittleEndian)
}

func (w *layoutWriter) bytes(b []byte) {
	_ = w.enc.WriteBytes(b, false)
}

func (w *layoutWriter) key(k solana.PublicKey) {
	w.bytes(k[:])
}

func (w *layoutWriter) writeMarketStateV1(s *MarketStateV1) {
	w.u64(uint64(s.AccountFlags))
	w.key(s.OwnAddress)
	w.u64(s.VaultSignerNonce)
	w.key(s.CoinMint)
	w.key(s.PcMint)
	w.key(s.CoinVault)
	w.u64(s.CoinDepositsTotal)
	w.u64(s.CoinFeesAccrued)
	w.key(s.PcVault)
	w.u64(s.PcDepositsTotal)
	w.u64(s.PcFeesAccrued)
	w.u64(s.PcDustThreshold)
	w.key(s.RequestQueue)
	w.key(s.EventQueue)
	w.key(s.Bids)
	w.key(s.Asks)
	w.u64(s.CoinLotSize)
	w.u64(s.PcLotSize)
	w.u64(s.FeeRateBps)
	w.u64(s.ReferrerRebatesAccrued)
}

type SerumMarketCoder struct {
	dexProgramID solana.PublicKey
}

func NewSerumMarketCoder(dexProgramID solana.PublicKey) *SerumMarketCoder {
	return &SerumMarketCoder{dexProgramID: dexProgramID}
}

// Decode decodes the raw account data of a market.
func (coder *SerumMarketCoder) Decode(data []byte) (Market, error) {
	return DecodeMarket(data)
}

// MarketKeys decodes and validates the account fetched under address and
// derives its public keys.
func (coder *SerumMarketCoder) MarketKeys(address solana.PublicKey, data []byte) (*MarketPubkeys, error) {
	market, err := DecodeMarket(data)
	if err != nil {
		return nil, err
	}

	if err := ValidateMarket(market, address); err != nil {
		return nil, err
	}

	return market.Pubkeys(coder.dexProgramID)
}
