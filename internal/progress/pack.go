package progress

import "fmt"

const (
	// MaxRegions верхняя граница количества регионов на странице
	MaxRegions = 10000
	// MaxPaletteLen верхняя граница размера палитры.
	// Должна оставаться < Unpainted (255), иначе индекс цвета
	// столкнётся с sentinel-значением.
	MaxPaletteLen = 128
	// MaxFillEntries жёсткий cap на количество fill-записей при encode,
	// ограничивает CPU даже на враждебно больших входах
	MaxFillEntries = 20000
)

// Options настройки компиляции Pack Context.
type Options struct {
	StrictInputs    bool // StrictInputs валидировать пустые/дублирующиеся элементы (включено по умолчанию)
	AllowDuplicates bool // AllowDuplicates разрешить дубликаты при StrictInputs (выигрывает первое вхождение)
	StrictFills     bool // StrictFills ошибка вместо молчаливого drop неизвестных регионов/цветов при encode
}

// DefaultOptions возвращает строгие по умолчанию настройки.
// Порядок регионов и палитры И ЕСТЬ кодировка: молчаливый reorder или
// dedup изменил бы значение каждого байта и испортил все сохранённые
// снапшоты без единой видимой ошибки. Строгость на этапе компиляции
// превращает тихую порчу данных в громкий отказ на старте.
func DefaultOptions() Options {
	return Options{StrictInputs: true}
}

// Context представляет скомпилированный, провалидированный index mapping
// пары (regionOrder, palette). Компилируется один раз на страницу и
// переиспользуется: горячий путь (тап -> encode) не строит map на каждый тап.
type Context struct {
	regionIdx map[string]int
	colorIdx  map[string]int
	regions   []string
	palette   []string
	strict    bool
}

// Compile строит Context из списка регионов и палитры.
// При Options.StrictInputs возвращает ошибку контракта на пустые или
// дублирующиеся элементы; вызывающий не должен продолжать со сломанным
// контекстом.
func Compile(regionOrder, palette []string, opts Options) (*Context, error) {
	if len(regionOrder) == 0 {
		return nil, ErrRegionOrderEmpty
	}
	if len(palette) == 0 {
		return nil, ErrPaletteEmpty
	}
	if len(regionOrder) > MaxRegions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRegions, len(regionOrder), MaxRegions)
	}
	if len(palette) > MaxPaletteLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyColors, len(palette), MaxPaletteLen)
	}

	ctx := &Context{
		regionIdx: make(map[string]int, len(regionOrder)),
		colorIdx:  make(map[string]int, len(palette)),
		regions:   append([]string(nil), regionOrder...),
		palette:   append([]string(nil), palette...),
		strict:    opts.StrictFills,
	}

	for i, id := range regionOrder {
		if opts.StrictInputs && id == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyRegionID, i)
		}
		if _, exists := ctx.regionIdx[id]; exists {
			if opts.StrictInputs && !opts.AllowDuplicates {
				return nil, fmt.Errorf("%w: %q at position %d", ErrDuplicateRegionID, id, i)
			}
			// При разрешённых дубликатах выигрывает первое вхождение
			continue
		}
		ctx.regionIdx[id] = i
	}

	for i, color := range palette {
		if opts.StrictInputs && color == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyColor, i)
		}
		if _, exists := ctx.colorIdx[color]; exists {
			if opts.StrictInputs && !opts.AllowDuplicates {
				return nil, fmt.Errorf("%w: %q at position %d", ErrDuplicateColor, color, i)
			}
			continue
		}
		ctx.colorIdx[color] = i
	}

	return ctx, nil
}

// MustCompile как Compile, но паникует при ошибке.
// Только для статически известного контента (wiring, тесты).
func MustCompile(regionOrder, palette []string, opts Options) *Context {
	ctx, err := Compile(regionOrder, palette, opts)
	if err != nil {
		panic(fmt.Sprintf("progress: compile pack context: %v", err))
	}
	return ctx
}

// RegionsCount возвращает количество регионов (длину packed progress)
func (c *Context) RegionsCount() int {
	return len(c.regions)
}

// PaletteLen возвращает размер палитры
func (c *Context) PaletteLen() int {
	return len(c.palette)
}

// RegionIndex возвращает позицию региона в каноническом порядке
func (c *Context) RegionIndex(regionID string) (int, bool) {
	i, ok := c.regionIdx[regionID]
	return i, ok
}

// ColorIndex возвращает позицию цвета в палитре
func (c *Context) ColorIndex(color string) (int, bool) {
	i, ok := c.colorIdx[color]
	return i, ok
}

// RegionAt возвращает id региона по позиции
func (c *Context) RegionAt(i int) (string, bool) {
	if i < 0 || i >= len(c.regions) {
		return "", false
	}
	return c.regions[i], true
}

// ColorAt возвращает цвет палитры по позиции
func (c *Context) ColorAt(i int) (string, bool) {
	if i < 0 || i >= len(c.palette) {
		return "", false
	}
	return c.palette[i], true
}
