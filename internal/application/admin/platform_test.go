package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

func TestPlatformCreateSealsPlaintextKey(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := &entity.Platform{TenantID: "t1", Name: "my-openai", Provider: "OpenAI", BaseURL: "https://api.openai.com/v1/", APIKey: "sk-plain"}
	require.NoError(t, e.platformSvc.Create(ctx, p))

	stored, err := e.platforms.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, secret.IsEncrypted(stored.APIKey))
	assert.Equal(t, "sk-plain", e.cipher.Decrypt(ctx, stored.APIKey))
	assert.Equal(t, "openai", stored.Provider)
	assert.Equal(t, "https://api.openai.com/v1", stored.BaseURL)
}

func TestPlatformCreateKeepsPlaceholderAndCiphertext(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	placeholder := &entity.Platform{TenantID: "t1", Name: "env-key", Provider: "openai", APIKey: "{OPENAI_API_KEY}"}
	require.NoError(t, e.platformSvc.Create(ctx, placeholder))
	assert.Equal(t, "{OPENAI_API_KEY}", placeholder.APIKey)

	sealed, err := e.cipher.Encrypt("sk-already")
	require.NoError(t, err)
	encrypted := &entity.Platform{TenantID: "t1", Name: "enc-key", Provider: "openai", APIKey: sealed}
	require.NoError(t, e.platformSvc.Create(ctx, encrypted))
	assert.Equal(t, sealed, encrypted.APIKey)
}

func TestPlatformCreateDuplicateName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.platformSvc.Create(ctx, &entity.Platform{TenantID: "t1", Name: "dup", Provider: "openai"}))
	err := e.platformSvc.Create(ctx, &entity.Platform{TenantID: "t1", Name: "dup", Provider: "openai"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeConflict, errors.AsAppError(err).Code)

	// 不同租户同名不冲突
	require.NoError(t, e.platformSvc.Create(ctx, &entity.Platform{TenantID: "t2", Name: "dup", Provider: "openai"}))
}

func TestPlatformCreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		platform *entity.Platform
	}{
		{"empty name", &entity.Platform{TenantID: "t1", Name: "  ", Provider: "openai"}},
		{"empty provider", &entity.Platform{TenantID: "t1", Name: "ok", Provider: ""}},
		{"relative base url", &entity.Platform{TenantID: "t1", Name: "ok", Provider: "openai", BaseURL: "api.openai.com/v1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.platformSvc.Create(ctx, tc.platform)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidParam, errors.AsAppError(err).Code)
		})
	}
}

func TestPlatformUpdateEmptyKeyKeepsCurrent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := &entity.Platform{TenantID: "t1", Name: "keep", Provider: "openai", APIKey: "sk-original"}
	require.NoError(t, e.platformSvc.Create(ctx, p))
	sealedKey := p.APIKey

	updated := &entity.Platform{ID: p.ID, TenantID: "t1", Name: "keep", Provider: "openai", APIKey: ""}
	require.NoError(t, e.platformSvc.Update(ctx, updated))
	assert.Equal(t, sealedKey, updated.APIKey)

	replaced := &entity.Platform{ID: p.ID, TenantID: "t1", Name: "keep", Provider: "openai", APIKey: "sk-new"}
	require.NoError(t, e.platformSvc.Update(ctx, replaced))
	assert.Equal(t, "sk-new", e.cipher.Decrypt(ctx, replaced.APIKey))
}

func TestPlatformUpdateWrongTenant(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := &entity.Platform{TenantID: "t1", Name: "mine", Provider: "openai"}
	require.NoError(t, e.platformSvc.Create(ctx, p))

	err := e.platformSvc.Update(ctx, &entity.Platform{ID: p.ID, TenantID: "t2", Name: "mine", Provider: "openai"})
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformNotFound, errors.AsAppError(err).Code)
}

func TestPlatformGetSystemVisible(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	system := e.seedPlatform(entity.SystemTenantID)
	other := e.seedPlatform("t2")

	got, err := e.platformSvc.Get(ctx, "t1", system.ID)
	require.NoError(t, err)
	assert.Equal(t, system.ID, got.ID)

	_, err = e.platformSvc.Get(ctx, "t1", other.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformNotFound, errors.AsAppError(err).Code)
}
