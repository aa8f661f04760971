package handler

import (
	"errors"
	"testing"

	"github.com/user/cinesight/internal/dataset"
)

func TestParseTopN(t *testing.T) {
	if n, err := parseTopN(""); err != nil || n != 10 {
		t.Errorf("parseTopN(\"\") = (%d, %v)，期望默认值 10", n, err)
	}
	if n, err := parseTopN("5"); err != nil || n != 5 {
		t.Errorf("parseTopN(\"5\") = (%d, %v)", n, err)
	}
	if n, err := parseTopN(" 7 "); err != nil || n != 7 {
		t.Errorf("parseTopN(\" 7 \") = (%d, %v)，期望容忍空白", n, err)
	}

	if _, err := parseTopN("ten"); !errors.Is(err, dataset.ErrInvalidArgument) {
		t.Errorf("parseTopN(\"ten\") 错误 = %v，期望 ErrInvalidArgument", err)
	}
	if _, err := parseTopN("3.5"); !errors.Is(err, dataset.ErrInvalidArgument) {
		t.Errorf("parseTopN(\"3.5\") 错误 = %v，期望 ErrInvalidArgument", err)
	}
}

func TestParseHeight(t *testing.T) {
	if v, err := parseHeight("min_height", "1.75"); err != nil || v != 1.75 {
		t.Errorf("parseHeight(\"1.75\") = (%v, %v)", v, err)
	}
	if _, err := parseHeight("min_height", "short"); !errors.Is(err, dataset.ErrInvalidArgument) {
		t.Errorf("parseHeight(\"short\") 错误 = %v，期望 ErrInvalidArgument", err)
	}
	if _, err := parseHeight("max_height", ""); !errors.Is(err, dataset.ErrInvalidArgument) {
		t.Errorf("parseHeight(\"\") 错误 = %v，期望 ErrInvalidArgument", err)
	}
}
