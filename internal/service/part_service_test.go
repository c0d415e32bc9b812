package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsgarage/inventory-api/internal/model"
)

func TestParsePartNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint64
		ok    bool
	}{
		{name: "plain number", input: "1001", want: 1001, ok: true},
		{name: "surrounding spaces", input: " 42 ", want: 42, ok: true},
		{name: "zero", input: "0", ok: false},
		{name: "negative", input: "-5", ok: false},
		{name: "not a number", input: "tire", ok: false},
		{name: "empty", input: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParsePartNumber(tt.input)
			if !tt.ok {
				require.ErrorIs(t, err, model.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestPartCreateDefaultsAndImageHandling(t *testing.T) {
	ctx := context.Background()
	svc := NewPartService(newFakePartStore())

	p, err := svc.Create(ctx, 1001, "Tire", "", "not a url")
	require.NoError(t, err)
	assert.Equal(t, model.ConditionUnknown, p.Condition, "blank condition defaults")
	assert.False(t, p.Image.Valid, "invalid image URL is nulled, not rejected")

	p, err = svc.Create(ctx, 1002, "Muffler", "New", "https://img.example.com/muffler.jpg")
	require.NoError(t, err)
	assert.Equal(t, "New", p.Condition)
	require.True(t, p.Image.Valid)
	assert.Equal(t, "https://img.example.com/muffler.jpg", p.Image.String)
}

func TestPartCreateValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakePartStore()
	svc := NewPartService(store)

	_, err := svc.Create(ctx, 0, "Tire", "", "")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Create(ctx, 1001, "   ", "", "")
	require.ErrorIs(t, err, model.ErrValidation)

	assert.Empty(t, store.parts, "rejected create must not insert")
}

func TestPartFindByNumberAbsentIsEmptyResult(t *testing.T) {
	ctx := context.Background()
	svc := NewPartService(newFakePartStore())

	out, err := svc.FindByNumber(ctx, 9999)
	require.NoError(t, err, "absence is a valid, non-exceptional outcome")
	assert.Empty(t, out)

	_, err = svc.FindByNumber(ctx, 0)
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestPartUpdateName(t *testing.T) {
	ctx := context.Background()
	store := newFakePartStore()
	svc := NewPartService(store)

	_, err := svc.Create(ctx, 1001, "Tire", "New", "")
	require.NoError(t, err)

	p, err := svc.UpdateName(ctx, 1001, "Winter Tire")
	require.NoError(t, err)
	assert.Equal(t, "Winter Tire", p.Name)
	assert.Equal(t, uint64(1001), p.PartNumber, "identity never changes")
	assert.Equal(t, "New", p.Condition, "only the name changes")
}

func TestPartUpdateNameNonexistentLeavesTableUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFakePartStore()
	svc := NewPartService(store)

	_, err := svc.Create(ctx, 1001, "Tire", "", "")
	require.NoError(t, err)

	_, err = svc.UpdateName(ctx, 9999, "X")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.Len(t, store.parts, 1)
	assert.Equal(t, "Tire", store.parts[1001].Name)
}

func TestPartDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakePartStore()
	svc := NewPartService(store)

	_, err := svc.Create(ctx, 1001, "Tire", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1001))
	assert.Empty(t, store.parts)

	require.ErrorIs(t, svc.Delete(ctx, 1001), model.ErrNotFound)
}
