package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Valid(t *testing.T) {
	ctx, err := Compile(
		[]string{"r0", "r1", "r2"},
		[]string{"#fff", "#000"},
		DefaultOptions(),
	)
	require.NoError(t, err)
	require.NotNil(t, ctx)

	assert.Equal(t, 3, ctx.RegionsCount())
	assert.Equal(t, 2, ctx.PaletteLen())

	idx, ok := ctx.RegionIndex("r1")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	colorIdx, ok := ctx.ColorIndex("#000")
	assert.True(t, ok)
	assert.Equal(t, 1, colorIdx)

	_, ok = ctx.RegionIndex("missing")
	assert.False(t, ok)
}

func TestCompile_ContractViolations(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		regions []string
		palette []string
		opts    Options
	}{
		{
			name:    "empty region order",
			regions: nil,
			palette: []string{"#fff"},
			opts:    DefaultOptions(),
			wantErr: ErrRegionOrderEmpty,
		},
		{
			name:    "empty palette",
			regions: []string{"r0"},
			palette: nil,
			opts:    DefaultOptions(),
			wantErr: ErrPaletteEmpty,
		},
		{
			name:    "empty region id",
			regions: []string{"r0", ""},
			palette: []string{"#fff"},
			opts:    DefaultOptions(),
			wantErr: ErrEmptyRegionID,
		},
		{
			name:    "duplicate region id",
			regions: []string{"r0", "r1", "r0"},
			palette: []string{"#fff"},
			opts:    DefaultOptions(),
			wantErr: ErrDuplicateRegionID,
		},
		{
			name:    "empty palette color",
			regions: []string{"r0"},
			palette: []string{"#fff", ""},
			opts:    DefaultOptions(),
			wantErr: ErrEmptyColor,
		},
		{
			name:    "duplicate palette color",
			regions: []string{"r0"},
			palette: []string{"#fff", "#fff"},
			opts:    DefaultOptions(),
			wantErr: ErrDuplicateColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := Compile(tt.regions, tt.palette, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, ctx)
		})
	}
}

func TestCompile_AllowDuplicates_FirstWins(t *testing.T) {
	ctx, err := Compile(
		[]string{"r0", "r1", "r0"},
		[]string{"#fff", "#fff"},
		Options{StrictInputs: true, AllowDuplicates: true},
	)
	require.NoError(t, err)

	// При дубликатах выигрывает первое вхождение
	idx, ok := ctx.RegionIndex("r0")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	colorIdx, ok := ctx.ColorIndex("#fff")
	assert.True(t, ok)
	assert.Equal(t, 0, colorIdx)
}

func TestCompile_NonStrict_SkipsValidation(t *testing.T) {
	// Без StrictInputs пустые и дублирующиеся элементы не считаются ошибкой
	ctx, err := Compile(
		[]string{"r0", "", "r0"},
		[]string{"#fff", ""},
		Options{},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, ctx.RegionsCount())
}

func TestCompile_Limits(t *testing.T) {
	tooManyRegions := make([]string, MaxRegions+1)
	for i := range tooManyRegions {
		tooManyRegions[i] = "r" + string(rune('a'+i%26)) + string(rune('0'+i%10))
	}

	_, err := Compile(tooManyRegions, []string{"#fff"}, Options{})
	assert.ErrorIs(t, err, ErrTooManyRegions)

	tooManyColors := make([]string, MaxPaletteLen+1)
	for i := range tooManyColors {
		tooManyColors[i] = "c" + string(rune('a'+i%26)) + string(rune('0'+i%10))
	}

	_, err = Compile([]string{"r0"}, tooManyColors, Options{})
	assert.ErrorIs(t, err, ErrTooManyColors)
}

func TestMustCompile_PanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(nil, nil, DefaultOptions())
	})
}
