package boxref

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/slok/jiffybox/internal/model"
	"github.com/slok/jiffybox/internal/provider"
)

// ParseID returns the box id if the reference is a positive number.
func ParseID(ref string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NamePrefix forces a reference to be matched by name, e.g. "name:42" for a
// box named 42.
const NamePrefix = "name:"

// Resolve returns the id of a box referenced by id or by name.
// Numeric references are ids unless they use NamePrefix. Names need an exact
// and unique match.
func Resolve(ctx context.Context, p provider.Provider, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, fmt.Errorf("box name or id is required: %w", model.ErrNotValid)
	}

	if name, ok := strings.CutPrefix(ref, NamePrefix); ok {
		ref = name
		if ref == "" {
			return 0, fmt.Errorf("box name is required: %w", model.ErrNotValid)
		}
	} else if id, ok := ParseID(ref); ok {
		return id, nil
	}

	res, err := p.ListBoxes(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not list boxes: %w", err)
	}

	ids := []int{}
	for _, b := range res.Value {
		if b.Name == ref {
			ids = append(ids, b.ID)
		}
	}

	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("box %q: %w", ref, model.ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("box name %q is used by boxes %v, use the id: %w", ref, ids, model.ErrNotValid)
	}
}

// NameInUse returns true if a box already uses the name.
func NameInUse(ctx context.Context, p provider.Provider, name string) (bool, error) {
	res, err := p.ListBoxes(ctx)
	if err != nil {
		return false, fmt.Errorf("could not list boxes: %w", err)
	}

	for _, b := range res.Value {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}
