package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDriveURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "share link rewritten",
			in:   "https://drive.google.com/file/d/1AbCdEf/view?usp=sharing",
			want: "https://drive.google.com/uc?export=download&id=1AbCdEf",
		},
		{
			name: "drive link without file id untouched",
			in:   "https://drive.google.com/drive/folders/xyz",
			want: "https://drive.google.com/drive/folders/xyz",
		},
		{
			name: "ordinary url untouched",
			in:   "https://example.com/video.mp4",
			want: "https://example.com/video.mp4",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeDriveURL(tc.in))
		})
	}
}

func TestValidateMimeType(t *testing.T) {
	pdf := append([]byte("%PDF-1.4"), bytes.Repeat([]byte{0}, 16)...)
	mimeType, err := ValidateMimeType(bytes.NewReader(pdf), AllowedUploadMimeTypes)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mimeType)

	_, err = ValidateMimeType(bytes.NewReader([]byte("#!/bin/sh\nrm -rf\n")), AllowedUploadMimeTypes)
	assert.Error(t, err)
}

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("video/mp4"))
	assert.True(t, IsVideo("application/x-mpegURL"))
	assert.False(t, IsVideo("application/pdf"))
}

func TestParsePosition(t *testing.T) {
	n, err := ParsePosition("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParsePosition("-1")
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = ParsePosition("abc")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}
