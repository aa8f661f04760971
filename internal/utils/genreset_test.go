package utils

import (
	"reflect"
	"testing"
)

func TestParseGenreList(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Drama, Comedy, Action", []string{"drama", "comedy", "action"}},
		{"  Drama ,drama, DRAMA ", []string{"drama"}},
		{"Science Fiction,", []string{"science fiction"}},
		{"", nil},
		{" , , ", nil},
	}
	for _, tt := range tests {
		if got := ParseGenreList(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseGenreList(%q) = %v，期望 %v", tt.text, got, tt.want)
		}
	}
}

func TestIntersectGenres(t *testing.T) {
	a := []string{"drama", "comedy", "horror"}
	b := []string{"comedy", "drama"}

	got := IntersectGenres(a, b)
	if !reflect.DeepEqual(got, []string{"drama", "comedy"}) {
		t.Errorf("IntersectGenres = %v", got)
	}

	if GenresSubset(a, b) {
		t.Error("a 不应完全包含于 b")
	}
	if !GenresSubset(b, a) {
		t.Error("b 应完全包含于 a")
	}
}
