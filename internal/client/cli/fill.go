package cli

import (
	"context"
	"fmt"
)

// RunFill закрашивает регион текущей страницы
func RunFill(ctx context.Context, args []string, deps Deps) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raskraska fill <region> <color>")
	}
	regionID, color := args[0], args[1]

	pageID, err := currentPageID(ctx, deps)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, pageID, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Fill(ctx, regionID, color); err != nil {
		return fmt.Errorf("failed to fill: %w", err)
	}

	// CLI-процесс завершается сразу, debounce бессмысленен
	if err := s.FlushNow(ctx); err != nil {
		fmt.Printf("⚠️  Not synced yet (will retry on next command): %v\n", err)
	}

	fmt.Printf("✓ %s painted %s (revision %d)\n", regionID, color, s.ClientRev())

	return nil
}

// RunUndo откатывает последнюю мутацию текущей страницы
func RunUndo(ctx context.Context, deps Deps) error {
	pageID, err := currentPageID(ctx, deps)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, pageID, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	revBefore := s.ClientRev()
	if err := s.Undo(ctx); err != nil {
		return fmt.Errorf("failed to undo: %w", err)
	}

	if s.ClientRev() == revBefore {
		fmt.Println("Nothing to undo (empty history or undo budget exhausted).")
		return nil
	}

	if err := s.FlushNow(ctx); err != nil {
		fmt.Printf("⚠️  Not synced yet (will retry on next command): %v\n", err)
	}

	if left := s.UndoLeft(); left >= 0 {
		fmt.Printf("✓ Undone (revision %d, %d undo left)\n", s.ClientRev(), left)
	} else {
		fmt.Printf("✓ Undone (revision %d)\n", s.ClientRev())
	}

	return nil
}

// RunReset очищает текущую страницу; с флагом --all стирает
// все локальное состояние страницы вместе с бюджетом undo
func RunReset(ctx context.Context, args []string, deps Deps) error {
	pageID, err := currentPageID(ctx, deps)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, pageID, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) > 0 && args[0] == "--all" {
		if err := s.ResetAll(ctx); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		fmt.Println("✓ Page wiped: progress, history and pending sync are gone.")
		return nil
	}

	if err := s.ResetProgress(ctx); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}

	if err := s.FlushNow(ctx); err != nil {
		fmt.Printf("⚠️  Not synced yet (will retry on next command): %v\n", err)
	}

	fmt.Printf("✓ Progress cleared (revision %d)\n", s.ClientRev())

	return nil
}
