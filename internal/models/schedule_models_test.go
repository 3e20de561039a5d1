package models

import "testing"

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(25, 2, 10)
	if meta.Total != 25 {
		t.Fatalf("expected total 25, got %d", meta.Total)
	}
	if meta.Page != 2 {
		t.Fatalf("expected page 2, got %d", meta.Page)
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 records at page size 10, got %d", meta.TotalPages)
	}
}

func TestNewPaginationMetaExactMultiple(t *testing.T) {
	meta := NewPaginationMeta(20, 1, 10)
	if meta.TotalPages != 2 {
		t.Fatalf("expected 2 pages for 20 records at page size 10, got %d", meta.TotalPages)
	}
}

func TestNewPaginationMetaEmptyResult(t *testing.T) {
	meta := NewPaginationMeta(0, 1, 10)
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 pages for an empty result, got %d", meta.TotalPages)
	}
}

func TestNewPaginationMetaZeroPageSize(t *testing.T) {
	meta := NewPaginationMeta(5, 1, 0)
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 pages when page size is 0, got %d", meta.TotalPages)
	}
}
