package contract

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// codecVersion increments when the storage encoding changes.
const codecVersion uint8 = 1

// encodeMeta packs the fields fixed at creation.
//
// Layout:
//
//	version | ID | GuessDeadline | RevealDeadline | TotalPrize | CreatedAt | Creator (u16 len) | Asset (u8 len)
func encodeMeta(g *Game) []byte {
	out := make([]byte, 0, 1+5*8+2+len(g.Creator)+1+len(g.Asset))
	w := writer{out: out}
	w.u8(codecVersion)
	w.u64(g.ID)
	w.u64(g.GuessDeadline)
	w.u64(g.RevealDeadline)
	w.u64(g.TotalPrize)
	w.u64(g.CreatedAt)
	w.str16(g.Creator.String())
	w.str8(g.Asset.String())
	return w.out
}

// encodeState packs the counters that change while the game runs.
//
// Layout:
//
//	version | WinnerCount | ClaimedCount | PaidOut
func encodeState(g *Game) []byte {
	w := writer{out: make([]byte, 0, 1+3*8)}
	w.u8(codecVersion)
	w.u64(g.WinnerCount)
	w.u64(g.ClaimedCount)
	w.u64(g.PaidOut)
	return w.out
}

func decodeMeta(b []byte, g *Game) error {
	r := &rd{b: b}
	if v := r.u8(); r.err == nil && v != codecVersion {
		return errors.Wrapf(ErrCorruptState, "meta: unsupported version %d", v)
	}
	g.ID = r.u64()
	g.GuessDeadline = r.u64()
	g.RevealDeadline = r.u64()
	g.TotalPrize = r.u64()
	g.CreatedAt = r.u64()
	g.Creator = sdk.Address(r.str16())
	g.Asset = sdk.Asset(r.str8())
	return errors.Wrap(r.end(), "meta")
}

func decodeState(b []byte, g *Game) error {
	r := &rd{b: b}
	if v := r.u8(); r.err == nil && v != codecVersion {
		return errors.Wrapf(ErrCorruptState, "state: unsupported version %d", v)
	}
	g.WinnerCount = r.u64()
	g.ClaimedCount = r.u64()
	g.PaidOut = r.u64()
	return errors.Wrap(r.end(), "state")
}

// loadGame reads meta and state of game id through the write set.
func loadGame(ws *writeSet, id uint64) (*Game, error) {
	meta, err := ws.get(gameMetaKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "load game %d", id)
	}
	if meta == nil || *meta == "" {
		return nil, errors.Wrapf(ErrGameNotFound, "game %d", id)
	}
	g := &Game{}
	if err := decodeMeta([]byte(*meta), g); err != nil {
		return nil, err
	}
	if g.ID != id {
		return nil, errors.Wrapf(ErrCorruptState, "meta of game %d carries id %d", id, g.ID)
	}
	state, err := ws.get(gameStateKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "load game %d", id)
	}
	if state != nil && *state != "" {
		if err := decodeState([]byte(*state), g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func saveMeta(ws *writeSet, g *Game)  { ws.set(gameMetaKey(g.ID), string(encodeMeta(g))) }
func saveState(ws *writeSet, g *Game) { ws.set(gameStateKey(g.ID), string(encodeState(g))) }

// writer appends big-endian integers and length-prefixed strings.
type writer struct {
	out []byte
}

func (w *writer) u8(x byte) { w.out = append(w.out, x) }

func (w *writer) u64(x uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], x)
	w.out = append(w.out, tmp[:]...)
}

func (w *writer) str16(s string) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(len(s)))
	w.out = append(w.out, tmp[:]...)
	w.out = append(w.out, s...)
}

func (w *writer) str8(s string) {
	w.out = append(w.out, byte(len(s)))
	w.out = append(w.out, s...)
}

// rd is a bounds-checked big-endian reader. The first short read sets err;
// every later read returns zero values.
type rd struct {
	b   []byte
	i   int
	err error
}

func (r *rd) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.i+n > len(r.b) {
		r.err = errors.Wrapf(ErrCorruptState, "decode overflow at %d, need %d of %d", r.i, n, len(r.b))
		return false
	}
	return true
}

func (r *rd) u8() byte {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.b[r.i : r.i+2])
	r.i += 2
	return v
}

func (r *rd) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.b[r.i : r.i+n]
	r.i += n
	return v
}

func (r *rd) str16() string { return string(r.bytes(int(r.u16()))) }
func (r *rd) str8() string  { return string(r.bytes(int(r.u8()))) }

// end reports a read error or trailing bytes.
func (r *rd) end() error {
	if r.err != nil {
		return r.err
	}
	if r.i != len(r.b) {
		return errors.Wrapf(ErrCorruptState, "%d trailing bytes", len(r.b)-r.i)
	}
	return nil
}
