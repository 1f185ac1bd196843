package vtf_test

import (
	"testing"

	"skyconv/vtf"
)

func TestFormatDataSize(t *testing.T) {
	tests := []struct {
		format vtf.Format
		w, h   int
		want   int
	}{
		{vtf.FormatRGBA8888, 4, 4, 64},
		{vtf.FormatRGB888, 3, 3, 27},
		{vtf.FormatRGB565, 2, 2, 8},
		{vtf.FormatI8, 3, 1, 3},
		{vtf.FormatRGBA16161616F, 2, 2, 32},
		{vtf.FormatDXT1, 4, 4, 8},
		{vtf.FormatDXT1, 2, 2, 8},
		{vtf.FormatDXT1, 16, 8, 64},
		{vtf.FormatDXT3, 5, 5, 64},
		{vtf.FormatDXT5, 4, 4, 16},
		{vtf.FormatNone, 4, 4, 0},
	}
	for _, test := range tests {
		size := test.format.DataSize(test.w, test.h)
		if size != test.want {
			t.Errorf("%dx%d %s should take %d bytes but takes %d\n", test.w, test.h, test.format, test.want, size)
		}
	}
}

func TestFormatString(t *testing.T) {
	if s := vtf.FormatDXT1OneBitAlpha.String(); s != "DXT1_ONEBITALPHA" {
		t.Errorf("name should be DXT1_ONEBITALPHA but is %s\n", s)
	}
	if s := vtf.FormatNone.String(); s != "NONE" {
		t.Errorf("name should be NONE but is %s\n", s)
	}
	if s := vtf.Format(99).String(); s != "UNKNOWN" {
		t.Errorf("name should be UNKNOWN but is %s\n", s)
	}
}

func TestDecodableFormats(t *testing.T) {
	decodable := []vtf.Format{
		vtf.FormatRGBA8888, vtf.FormatBGR888, vtf.FormatBGRA4444,
		vtf.FormatDXT1, vtf.FormatDXT5, vtf.FormatRGBA16161616F,
	}
	for _, f := range decodable {
		if !vtf.Decodable(f) {
			t.Errorf("%s should be decodable\n", f)
		}
	}
	undecodable := []vtf.Format{
		vtf.FormatP8, vtf.FormatUV88, vtf.FormatUVWQ8888,
		vtf.FormatUVLX8888, vtf.FormatNone, vtf.Format(42),
	}
	for _, f := range undecodable {
		if vtf.Decodable(f) {
			t.Errorf("%s should not be decodable\n", f)
		}
	}
}
