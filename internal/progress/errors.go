package progress

import "errors"

// Ошибки контракта компиляции Pack Context.
// Возникают только из-за бага в авторском контенте и должны
// останавливать запуск, а не обрабатываться в рантайме.
var (
	// ErrRegionOrderEmpty indicates that region order list is missing
	ErrRegionOrderEmpty = errors.New("region order is empty")

	// ErrPaletteEmpty indicates that palette list is missing
	ErrPaletteEmpty = errors.New("palette is empty")

	// ErrTooManyRegions indicates that region order exceeds MaxRegions
	ErrTooManyRegions = errors.New("too many regions")

	// ErrTooManyColors indicates that palette exceeds MaxPaletteLen
	ErrTooManyColors = errors.New("too many palette colors")

	// ErrEmptyRegionID indicates an empty region id in region order
	ErrEmptyRegionID = errors.New("empty region id")

	// ErrEmptyColor indicates an empty color in palette
	ErrEmptyColor = errors.New("empty palette color")

	// ErrDuplicateRegionID indicates a duplicate region id in region order
	ErrDuplicateRegionID = errors.New("duplicate region id")

	// ErrDuplicateColor indicates a duplicate color in palette
	ErrDuplicateColor = errors.New("duplicate palette color")
)

// Ошибки строгого декодирования packed progress.
// Несовпадение длины или диапазона означает, что байты были
// сделаны для другой формы регионов/палитры: применять их нельзя.
var (
	// ErrProgressEmpty indicates an empty base64 progress string
	ErrProgressEmpty = errors.New("progress is empty")

	// ErrProgressBase64 indicates structurally invalid base64
	ErrProgressBase64 = errors.New("progress is not valid base64")

	// ErrProgressLength indicates decoded length != regionsCount
	ErrProgressLength = errors.New("progress length mismatch")

	// ErrProgressByteRange indicates a byte that is neither Unpainted nor a valid palette index
	ErrProgressByteRange = errors.New("progress byte out of palette range")

	// ErrUnknownRegion indicates a fill entry referencing an unknown region id (strict fills only)
	ErrUnknownRegion = errors.New("unknown region id")

	// ErrUnknownColor indicates a fill entry referencing an unknown palette color (strict fills only)
	ErrUnknownColor = errors.New("unknown palette color")
)
