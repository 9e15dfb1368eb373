// Package scrawl is the Composition Root for the scrawl note keeper.
//
// It connects the core note store (Domain Layer) with the storage adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// A notebook is a single slot holding the whole collection of short notes,
// rewritten on every change. The store does not care whether that slot is a
// JSON or YAML file, a SQLite row or a byte slice in memory.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Whole-Collection Writes**: every add, edit and delete saves the full collection atomically.
//   - **Search & Sort**: case-insensitive filtering and locale-aware ordering (`Project`).
//   - **Edit Sessions**: transient edit dialog state kept out of the store (`NewSession`).
//   - **Adapters**: file (`fs`, watched with fsnotify), `sqlite` and `memory`.
//
// Usage:
//
//	store, err := scrawl.New("~/notes.json",
//		scrawl.WithLogger(logger),
//	)
//
//	note, err := store.Add(ctx, "Shopping", "milk, eggs")
//	list := scrawl.Project(store.Notes(), "milk", scrawl.SortTitle)
package scrawl
