package physics

import (
	"reflect"
	"testing"

	"github.com/milk9111/protocol/common"
)

func TestGeometryCandidates(t *testing.T) {
	geom := NewGeometry([]common.Rect{
		common.NewRect(0, 0, 100, 20),
		common.NewRect(500, 500, 10, 10),
		common.NewRect(80, 10, 40, 40),
		common.NewRect(50, 50, 0, 0),
	})

	got := geom.Candidates(common.NewRect(90, 5, 10, 10))
	if want := []int{0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}

	if got := geom.Candidates(common.NewRect(1000, 1000, 5, 5)); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}

	if geom.Len() != 4 {
		t.Fatalf("Len = %d", geom.Len())
	}
}

func TestGeometryBounds(t *testing.T) {
	geom := NewGeometry([]common.Rect{
		common.NewRect(10, 10, 10, 10),
		common.NewRect(-5, 40, 10, 10),
		common.NewRect(999, 999, 0, 10),
	})
	if got, want := geom.Bounds(), common.NewRect(-5, 10, 25, 40); got != want {
		t.Fatalf("Bounds = %v, want %v", got, want)
	}
}

func TestGeometryRectsIsACopy(t *testing.T) {
	src := []common.Rect{common.NewRect(0, 0, 1, 1)}
	geom := NewGeometry(src)
	src[0].X = 99
	rects := geom.Rects()
	rects[0].Y = 42
	if geom.At(0) != common.NewRect(0, 0, 1, 1) {
		t.Fatalf("geometry was mutated through an alias: %v", geom.At(0))
	}
}
