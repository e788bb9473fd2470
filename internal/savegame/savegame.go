// Package savegame frames merchant memory state inside a host save stream.
//
// A stream is a format tag line followed by three JSON documents: the
// merchant map, the active filter profile and the saved profile map.
package savegame

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/merchant-memory/internal/model"
)

// FormatVersion tags streams this package can read.
const FormatVersion = "merchant-memory/v1"

// ErrCorrupt is returned when a correctly tagged stream fails to decode.
var ErrCorrupt = errors.New("savegame: corrupt payload")

// State is everything persisted for one game session.
type State struct {
	Merchants map[string]model.MerchantSnapshot
	Active    model.FilterProfile
	Profiles  map[string]model.FilterProfile
}

// Empty returns the state of a session that has never saved anything.
func Empty() State {
	return State{
		Merchants: map[string]model.MerchantSnapshot{},
		Active:    model.DefaultFilterProfile(),
		Profiles:  map[string]model.FilterProfile{},
	}
}

// Write encodes st to w.
func Write(w io.Writer, st State) error {
	if st.Merchants == nil {
		st.Merchants = map[string]model.MerchantSnapshot{}
	}
	if st.Profiles == nil {
		st.Profiles = map[string]model.FilterProfile{}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(FormatVersion + "\n"); err != nil {
		return fmt.Errorf("write tag: %w", err)
	}
	enc := json.NewEncoder(bw)
	if err := enc.Encode(st.Merchants); err != nil {
		return fmt.Errorf("encode merchants: %w", err)
	}
	if err := enc.Encode(st.Active); err != nil {
		return fmt.Errorf("encode active profile: %w", err)
	}
	if err := enc.Encode(st.Profiles); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return bw.Flush()
}

// Read decodes a stream written by Write. A stream with any other tag,
// including an empty stream, yields Empty() and recognized == false with no
// error. A recognized stream that fails to decode returns ErrCorrupt.
func Read(r io.Reader) (st State, recognized bool, err error) {
	br := bufio.NewReader(r)
	tag, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Empty(), false, fmt.Errorf("read tag: %w", err)
	}
	if strings.TrimSuffix(tag, "\n") != FormatVersion {
		return Empty(), false, nil
	}

	st = Empty()
	dec := json.NewDecoder(br)
	if err := dec.Decode(&st.Merchants); err != nil {
		return Empty(), true, fmt.Errorf("%w: merchants: %v", ErrCorrupt, err)
	}
	if err := dec.Decode(&st.Active); err != nil {
		return Empty(), true, fmt.Errorf("%w: active profile: %v", ErrCorrupt, err)
	}
	if err := dec.Decode(&st.Profiles); err != nil {
		return Empty(), true, fmt.Errorf("%w: profiles: %v", ErrCorrupt, err)
	}

	if st.Merchants == nil {
		st.Merchants = map[string]model.MerchantSnapshot{}
	}
	if st.Profiles == nil {
		st.Profiles = map[string]model.FilterProfile{}
	}
	return st, true, nil
}
