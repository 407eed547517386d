// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lfxerrors "github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

func TestNormalizedRecord_Validate(t *testing.T) {
	tests := []struct {
		name        string
		record      NormalizedRecord
		errContains string
	}{
		{
			name:   "complete record",
			record: NormalizedRecord{ID: "p1", Title: utils.StringPtr("Hello"), Slug: utils.StringPtr("hello")},
		},
		{
			name:   "content is optional",
			record: NormalizedRecord{ID: "p1", Title: utils.StringPtr("Hello"), Slug: utils.StringPtr("hello"), Content: nil},
		},
		{
			name:        "missing id",
			record:      NormalizedRecord{Title: utils.StringPtr("Hello"), Slug: utils.StringPtr("hello")},
			errContains: "missing pageId",
		},
		{
			name:        "missing title",
			record:      NormalizedRecord{ID: "p1", Slug: utils.StringPtr("hello")},
			errContains: "missing Name title",
		},
		{
			name:        "empty title",
			record:      NormalizedRecord{ID: "p1", Title: utils.StringPtr(""), Slug: utils.StringPtr("hello")},
			errContains: "missing Name title",
		},
		{
			name:        "missing slug",
			record:      NormalizedRecord{ID: "p1", Title: utils.StringPtr("Hello")},
			errContains: "missing Slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.IsType(t, lfxerrors.Validation{}, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestNormalizedRecord_FieldData(t *testing.T) {
	record := NormalizedRecord{
		ID:      "p1",
		Title:   utils.StringPtr("Hello"),
		Slug:    utils.StringPtr("hello"),
		Content: utils.StringPtr("Body"),
	}

	fieldData := record.FieldData()
	assert.Equal(t, "Hello", *fieldData.Name)
	assert.Equal(t, "hello", fieldData.SlugValue())
	assert.Equal(t, "Body", *fieldData.Content)
}
