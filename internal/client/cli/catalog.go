package cli

import (
	"fmt"
	"sort"
)

// Page описание страницы раскраски: канонический порядок регионов и палитра.
// ContentHash меняется вместе с разметкой, прогресс от старой разметки
// к новой не переносится.
type Page struct {
	ID          string
	Title       string
	ContentHash string
	RegionOrder []string
	Palette     []string
}

// catalog встроенный демо-каталог страниц.
// В Mini App каталог приходит с CDN вместе с SVG-разметкой.
var catalog = map[string]Page{
	"fox": {
		ID:          "fox",
		Title:       "Fox in the forest",
		ContentHash: "sha256:9f2c41d8",
		RegionOrder: []string{
			"body", "tail", "tail-tip", "ear-left", "ear-right",
			"muzzle", "nose", "eye-left", "eye-right", "paws",
		},
		Palette: []string{"#e2711d", "#ffffff", "#1d1d1b", "#8c4a16", "#f4a259"},
	},
	"rocket": {
		ID:          "rocket",
		Title:       "Rocket launch",
		ContentHash: "sha256:5b07aa31",
		RegionOrder: []string{
			"nose-cone", "body-upper", "body-lower", "window",
			"fin-left", "fin-right", "flame-outer", "flame-inner",
		},
		Palette: []string{"#d62828", "#f77f00", "#fcbf49", "#eae2b7", "#003049"},
	},
	"whale": {
		ID:          "whale",
		Title:       "Blue whale",
		ContentHash: "sha256:c31e88f0",
		RegionOrder: []string{
			"body", "belly", "fin", "tail", "eye", "spout", "wave-1", "wave-2",
		},
		Palette: []string{"#0077b6", "#90e0ef", "#caf0f8", "#03045e"},
	},
}

// FindPage возвращает страницу каталога по идентификатору
func FindPage(pageID string) (Page, error) {
	page, ok := catalog[pageID]
	if !ok {
		return Page{}, fmt.Errorf("unknown page %q. Run 'raskraska pages' to list available pages", pageID)
	}
	return page, nil
}

// ListPages возвращает страницы каталога в стабильном порядке
func ListPages() []Page {
	pages := make([]Page, 0, len(catalog))
	for _, p := range catalog {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages
}

// RunPages выводит список страниц каталога
func RunPages() error {
	fmt.Println("=== Pages ===")
	fmt.Println()
	for _, p := range ListPages() {
		fmt.Printf("%-10s %s (%d regions, %d colors)\n",
			p.ID, p.Title, len(p.RegionOrder), len(p.Palette))
	}
	return nil
}
