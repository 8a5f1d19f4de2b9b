package progress

import "fmt"

// Packed представляет packed progress как value type, привязанный к форме
// страницы: длина байтов проверяется при конструировании, а не разбросанными
// сравнениями len() по коду. Позиция байта i означает регион i канонического
// порядка — этот контракт и охраняет конструктор.
type Packed struct {
	bytes        []byte
	regionsCount int
}

// NewPacked оборачивает байты прогресса, проверяя длину против regionsCount
func NewPacked(b []byte, regionsCount int) (Packed, error) {
	rc := clampInt(regionsCount, 0, MaxRegions)
	if len(b) != rc {
		return Packed{}, fmt.Errorf("%w: got %d bytes, want %d", ErrProgressLength, len(b), rc)
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Packed{bytes: cp, regionsCount: rc}, nil
}

// EmptyPacked возвращает пустой прогресс для regionsCount регионов
func EmptyPacked(regionsCount int) Packed {
	b := MakeEmpty(regionsCount)
	return Packed{bytes: b, regionsCount: len(b)}
}

// ParsePacked декодирует base64 через строгие ворота DecodeBase64
func ParsePacked(b64 string, regionsCount, paletteLen int) (Packed, error) {
	b, err := DecodeBase64(b64, regionsCount, paletteLen)
	if err != nil {
		return Packed{}, err
	}
	return Packed{bytes: b, regionsCount: len(b)}, nil
}

// RegionsCount возвращает форму, под которую сделаны байты
func (p Packed) RegionsCount() int {
	return p.regionsCount
}

// Bytes возвращает копию байтов прогресса
func (p Packed) Bytes() []byte {
	cp := make([]byte, len(p.bytes))
	copy(cp, p.bytes)
	return cp
}

// B64 возвращает транспортное base64-представление
func (p Packed) B64() string {
	return EncodeBase64(p.bytes)
}

// At возвращает байт позиции i (Unpainted при выходе за границы)
func (p Packed) At(i int) byte {
	if i < 0 || i >= len(p.bytes) {
		return Unpainted
	}
	return p.bytes[i]
}

// WithFill возвращает копию с закрашенным регионом.
// Исходное значение не мутируется: снапшоты undo-стека держат
// ссылки на прежние состояния.
func (p Packed) WithFill(regionIdx int, colorIdx byte) (Packed, error) {
	if regionIdx < 0 || regionIdx >= len(p.bytes) {
		return Packed{}, fmt.Errorf("%w: region index %d of %d", ErrUnknownRegion, regionIdx, len(p.bytes))
	}
	cp := make([]byte, len(p.bytes))
	copy(cp, p.bytes)
	cp[regionIdx] = colorIdx
	return Packed{bytes: cp, regionsCount: p.regionsCount}, nil
}

// PaintedCount возвращает количество закрашенных регионов
func (p Packed) PaintedCount() int {
	n := 0
	for _, v := range p.bytes {
		if v != Unpainted {
			n++
		}
	}
	return n
}
