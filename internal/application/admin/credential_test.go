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

func TestCredentialUpsertSealsPlaintext(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform(entity.SystemTenantID)
	cred := &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: p.ID, APIKey: "sk-tenant", Enabled: true}
	require.NoError(t, e.credSvc.Upsert(ctx, cred))

	stored, err := e.creds.Get(ctx, "t1", p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, secret.IsEncrypted(stored.APIKey))
	assert.Equal(t, "sk-tenant", e.cipher.Decrypt(ctx, stored.APIKey))
}

func TestCredentialUpsertEmptyKeyKeepsExisting(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform(entity.SystemTenantID)
	require.NoError(t, e.credSvc.Upsert(ctx, &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: p.ID, APIKey: "sk-tenant", Enabled: true}))
	sealed, _ := e.creds.Get(ctx, "t1", p.ID)

	// 仅翻转开关，不重新提交密钥
	toggled := &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: p.ID, APIKey: "", Enabled: false}
	require.NoError(t, e.credSvc.Upsert(ctx, toggled))

	stored, err := e.creds.Get(ctx, "t1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, sealed.APIKey, stored.APIKey)
	assert.False(t, stored.Enabled)
}

func TestCredentialUpsertKeepsPlaceholder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform(entity.SystemTenantID)
	cred := &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: p.ID, APIKey: "{TENANT_KEY}", Enabled: true}
	require.NoError(t, e.credSvc.Upsert(ctx, cred))
	assert.Equal(t, "{TENANT_KEY}", cred.APIKey)
}

func TestCredentialUpsertForeignPlatform(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	foreign := e.seedPlatform("t2")
	err := e.credSvc.Upsert(ctx, &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: foreign.ID, APIKey: "sk-x"})
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformNotFound, errors.AsAppError(err).Code)

	err = e.credSvc.Upsert(ctx, &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: "ghost", APIKey: "sk-x"})
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformNotFound, errors.AsAppError(err).Code)
}

func TestCredentialDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform(entity.SystemTenantID)
	require.NoError(t, e.credSvc.Upsert(ctx, &entity.TenantCredentialOverride{TenantID: "t1", PlatformID: p.ID, APIKey: "sk-x", Enabled: true}))
	require.NoError(t, e.credSvc.Delete(ctx, "t1", p.ID))

	got, err := e.credSvc.Get(ctx, "t1", p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
