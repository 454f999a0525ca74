package economy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

// encodeState renders the persisted layout: decimal balances and a JSON
// array of item records
func encodeState(state domain.EconomyState) (map[string]string, error) {
	inv := state.Inventory
	if inv == nil {
		inv = []domain.Item{}
	}
	raw, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeInventory, err)
	}

	return map[string]string{
		domain.KeySilver:    strconv.FormatInt(state.Silver, 10),
		domain.KeyGold:      strconv.FormatInt(state.Gold, 10),
		domain.KeyInventory: string(raw),
	}, nil
}

// decodeState parses stored values; absent keys fall back to defaults.
// A corrupt key also falls back to its default without discarding the
// others: the decoded state is returned together with an error wrapping
// domain.ErrCorruptState per bad key. The missing slice is for logging only.
func decodeState(values map[string]string, defaults domain.EconomyState) (domain.EconomyState, []string, error) {
	state := defaults.Clone()
	var missing []string
	var errs []error

	for _, b := range []struct {
		key string
		dst *int64
	}{
		{domain.KeySilver, &state.Silver},
		{domain.KeyGold, &state.Gold},
	} {
		raw, ok := values[b.key]
		if !ok {
			missing = append(missing, b.key)
			continue
		}
		v, err := decodeBalance(b.key, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*b.dst = v
	}

	if raw, ok := values[domain.KeyInventory]; ok {
		var inv []domain.Item
		if err := json.Unmarshal([]byte(raw), &inv); err != nil {
			errs = append(errs, fmt.Errorf(ErrMsgDecodeInventory, domain.ErrCorruptState, err))
		} else {
			if inv == nil {
				inv = []domain.Item{}
			}
			state.Inventory = inv
		}
	} else {
		missing = append(missing, domain.KeyInventory)
	}

	return state, missing, errors.Join(errs...)
}

func decodeBalance(key, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf(ErrMsgDecodeBalanceFmt, domain.ErrCorruptState, key, raw)
	}
	return v, nil
}
