package cli

import (
	"context"
	"fmt"
)

// RunOpen открывает страницу каталога и делает ее текущей
func RunOpen(ctx context.Context, args []string, deps Deps) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: raskraska open <page>")
	}
	pageID := args[0]

	s, err := openSession(ctx, pageID, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Open(ctx); err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	if err := s.FlushNow(ctx); err != nil {
		fmt.Printf("⚠️  Not synced yet (will retry on next command): %v\n", err)
	}

	page, err := FindPage(pageID)
	if err != nil {
		return err
	}

	fmt.Printf("=== %s ===\n", page.Title)
	fmt.Println()
	printPage(page, s.Fills())
	fmt.Println()
	fmt.Printf("Revision: %d\n", s.ClientRev())

	return nil
}

// printPage печатает регионы страницы и их текущую закраску
func printPage(page Page, fills map[string]string) {
	fmt.Println("Regions:")
	for _, regionID := range page.RegionOrder {
		if color, ok := fills[regionID]; ok {
			fmt.Printf("  %-12s %s\n", regionID, color)
		} else {
			fmt.Printf("  %-12s (unpainted)\n", regionID)
		}
	}
	fmt.Println()
	fmt.Printf("Palette: %v\n", page.Palette)
}
