package main

import (
	"testing"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func champ(slug string) *domain.Champion {
	return &domain.Champion{Identity: domain.Identity{Slug: slug}}
}

func TestValidate(t *testing.T) {
	assert.Error(t, validate(nil))
	assert.ErrorContains(t, validate([]*domain.Champion{champ("ahri"), champ("ahri")}), `"ahri"`)
	assert.NoError(t, validate([]*domain.Champion{champ("ahri"), champ("garen")}))
}
