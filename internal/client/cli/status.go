package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ivmaks/raskraska/internal/client/outbox"
	"github.com/ivmaks/raskraska/internal/client/snapshot"
	"github.com/ivmaks/raskraska/internal/client/storage"
)

// RunStatus показывает состояние авторизации, текущую страницу
// и очередь синхронизации
func RunStatus(ctx context.Context, deps Deps) error {
	fmt.Println("=== Status ===")
	fmt.Println()

	// Авторизация
	_, err := deps.Meta.GetAccessToken(ctx)
	switch {
	case err == nil:
		fmt.Println("Auth: authenticated")
	case errors.Is(err, storage.ErrTokenNotFound):
		fmt.Println("Auth: not authenticated (run 'raskraska login')")
	default:
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	// Текущая страница
	store := snapshot.NewStore(deps.KV, deps.Logger)
	pageID, err := store.LoadLastPage(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current page: %w", err)
	}
	if pageID == "" {
		fmt.Println("Page: none open")
		return nil
	}

	page, err := FindPage(pageID)
	if err != nil {
		// Страница ушла из каталога, но указатель остался
		fmt.Printf("Page: %s (no longer in catalog)\n", pageID)
		return nil
	}

	s, err := openSession(ctx, pageID, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("Page: %s (%s)\n", page.ID, page.Title)
	fmt.Printf("Painted: %d of %d regions\n", len(s.Fills()), len(page.RegionOrder))
	fmt.Printf("Revision: %d\n", s.ClientRev())
	if left := s.UndoLeft(); left >= 0 {
		fmt.Printf("Undo left: %d\n", left)
	}

	// Очередь синхронизации
	pending, err := outbox.New(deps.KV, deps.Logger).LoadPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync queue: %w", err)
	}
	fmt.Println()
	if pending != nil {
		fmt.Printf("⚠️  Pending sync: revision %d waiting to be pushed\n", pending.ClientRev)
		fmt.Println("Run 'raskraska sync' to push now.")
	} else {
		fmt.Println("✓ All changes synced with server")
	}

	return nil
}

// RunSync немедленно проталкивает отложенные изменения на сервер
func RunSync(ctx context.Context, deps Deps) error {
	fmt.Println("=== Synchronization ===")
	fmt.Println()

	pending, err := outbox.New(deps.KV, deps.Logger).LoadPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sync queue: %w", err)
	}
	if pending == nil {
		fmt.Println("✓ Nothing to sync.")
		return nil
	}

	s, err := openSession(ctx, pending.LastPageID, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.FlushNow(ctx); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	fmt.Println("✓ Synchronization completed successfully!")
	fmt.Printf("Pushed revision: %d\n", pending.ClientRev)

	return nil
}
