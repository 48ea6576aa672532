package person

import (
	"context"
	"errors"
	"testing"
)

func TestServiceLifecycle(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "Ms", FirstName: "Ada", LastName: "Lovelace", DOB: "1815-12-10"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.FirstName != "Ada" || fetched.LastName != "Lovelace" {
		t.Fatalf("unexpected person: %+v", fetched)
	}

	if _, err := svc.Create(ctx, CreateInput{Title: "Mr", FirstName: "Alan", LastName: "Turing", DOB: "1912-06-23"}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	persons, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(persons) != 2 {
		t.Fatalf("expected 2 persons, got %d", len(persons))
	}

	updated, err := svc.Update(ctx, created.ID, CreateInput{Title: "Countess", FirstName: "Ada", LastName: "King", DOB: "1815-12-10"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.LastName != "King" || updated.Title != "Countess" {
		t.Fatalf("unexpected updated person: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update must not change creation time: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateRequiresNames(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Create(context.Background(), CreateInput{Title: "Dr"}); err == nil {
		t.Fatal("expected validation error for missing names")
	}
}

func TestUpdateUnknownPerson(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Update(context.Background(), "missing", CreateInput{FirstName: "Grace", LastName: "Hopper"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUnknownPerson(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
