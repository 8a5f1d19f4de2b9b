package progress

import (
	"encoding/base64"
	"fmt"
)

// Unpainted sentinel-байт "регион не закрашен"
const Unpainted byte = 0xFF

// clampInt обрезает значение в диапазон [lo, hi].
// Счётчики из чужих данных никогда не используются как есть.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MakeEmpty возвращает пустой packed progress: все байты Unpainted.
// regionsCount обрезается в [0, MaxRegions], никогда не возвращает ошибку.
func MakeEmpty(regionsCount int) []byte {
	n := clampInt(regionsCount, 0, MaxRegions)
	b := make([]byte, n)
	for i := range b {
		b[i] = Unpainted
	}
	return b
}

// EncodeSparse кодирует sparse-карту заливок (regionId -> color) в dense-байты.
// Записи с неизвестным регионом или цветом по умолчанию молча отбрасываются:
// контент могли передеплоить, пока у клиента оставалось старое состояние.
// При Options.StrictFills вместо drop возвращается ошибка.
// Записи сверх MaxFillEntries игнорируются.
func EncodeSparse(fills map[string]string, ctx *Context) ([]byte, error) {
	b := MakeEmpty(ctx.RegionsCount())

	seen := 0
	for regionID, color := range fills {
		if seen >= MaxFillEntries {
			break
		}
		seen++

		idx, ok := ctx.RegionIndex(regionID)
		if !ok {
			if ctx.strict {
				return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, regionID)
			}
			continue
		}

		colorIdx, ok := ctx.ColorIndex(color)
		if !ok {
			if ctx.strict {
				return nil, fmt.Errorf("%w: %q", ErrUnknownColor, color)
			}
			continue
		}

		b[idx] = byte(colorIdx)
	}

	return b, nil
}

// DecodeSparse декодирует dense-байты обратно в sparse-карту заливок.
// Байты Unpainted и байты >= paletteLen пропускаются: битые данные
// деградируют до "меньше закрашенных регионов", но никогда не падают.
// Байты неправильной длины не применяются вовсе (пустая карта).
func DecodeSparse(b []byte, ctx *Context) map[string]string {
	fills := make(map[string]string)
	if len(b) != ctx.RegionsCount() {
		return fills
	}

	for i, v := range b {
		if v == Unpainted || int(v) >= ctx.PaletteLen() {
			continue
		}
		regionID, ok := ctx.RegionAt(i)
		if !ok {
			continue
		}
		color, ok := ctx.ColorAt(int(v))
		if !ok {
			continue
		}
		fills[regionID] = color
	}

	return fills
}

// EncodeBase64 кодирует packed progress в транспортный base64
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 декодирует base64 обратно в packed progress.
// Это единственные строгие ворота всего пайплайна: ошибка вместо догадки,
// если вход пустой, структурно не base64, длина не равна regionsCount
// или встречен байт вне {Unpainted} U [0, paletteLen).
// Несовпадение длины/диапазона означает, что байты были сделаны для другой
// формы регионов/палитры, и их применение молча испортило бы прогресс.
func DecodeBase64(b64 string, regionsCount, paletteLen int) ([]byte, error) {
	if b64 == "" {
		return nil, ErrProgressEmpty
	}

	rc := clampInt(regionsCount, 0, MaxRegions)
	pl := clampInt(paletteLen, 0, MaxPaletteLen)

	b, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProgressBase64, err)
	}

	if len(b) != rc {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrProgressLength, len(b), rc)
	}

	for i, v := range b {
		if v != Unpainted && int(v) >= pl {
			return nil, fmt.Errorf("%w: byte %d at position %d, palette len %d", ErrProgressByteRange, v, i, pl)
		}
	}

	return b, nil
}
