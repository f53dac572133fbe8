package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

func TestSlotCreateForcesCustom(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	slot := &entity.UsagePolicySlot{TenantID: "t1", Name: "batch", Builtin: true}
	require.NoError(t, e.slotSvc.Create(ctx, slot))
	assert.False(t, slot.Builtin)
}

func TestSlotCreateDuplicateName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.slotSvc.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "batch"}))
	err := e.slotSvc.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "batch"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeConflict, errors.AsAppError(err).Code)
}

func TestSlotCreateWithTargetValidated(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform("t1")
	m := e.seedModel("t1", p.ID)
	other := e.seedPlatform(entity.SystemTenantID)

	slot := &entity.UsagePolicySlot{TenantID: "t1", Name: "targeted", PlatformID: &p.ID, ModelID: &m.ID}
	require.NoError(t, e.slotSvc.Create(ctx, slot))

	// 模型不属于给定平台
	bad := &entity.UsagePolicySlot{TenantID: "t1", Name: "mismatch", PlatformID: &other.ID, ModelID: &m.ID}
	err := e.slotSvc.Create(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, errors.CodeModelNotFound, errors.AsAppError(err).Code)
}

func TestSlotSetTarget(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform("t1")
	m := e.seedModel("t1", p.ID)
	require.NoError(t, e.slotSvc.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "main"}))

	require.NoError(t, e.slotSvc.SetTarget(ctx, "t1", "main", &p.ID, &m.ID))
	slot, err := e.slots.GetByName(ctx, "t1", "main")
	require.NoError(t, err)
	require.True(t, slot.HasTarget())
	assert.Equal(t, p.ID, *slot.PlatformID)
	assert.Equal(t, m.ID, *slot.ModelID)

	// 同时清空
	require.NoError(t, e.slotSvc.SetTarget(ctx, "t1", "main", nil, nil))
	slot, err = e.slots.GetByName(ctx, "t1", "main")
	require.NoError(t, err)
	assert.False(t, slot.HasTarget())
}

func TestSlotSetTargetHalfSet(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p := e.seedPlatform("t1")
	require.NoError(t, e.slotSvc.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "main"}))

	err := e.slotSvc.SetTarget(ctx, "t1", "main", &p.ID, nil)
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeInvalidParam, appErr.Code)

	empty := ""
	err = e.slotSvc.SetTarget(ctx, "t1", "main", &empty, &p.ID)
	require.Error(t, err)
}

func TestSlotSetTargetUnknownSlot(t *testing.T) {
	e := newEnv(t)

	err := e.slotSvc.SetTarget(context.Background(), "t1", "ghost", nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSlotNotFound, errors.AsAppError(err).Code)
}

func TestSlotDeleteProtectsBuiltin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_ = e.slots.Create(ctx, &entity.UsagePolicySlot{TenantID: entity.SystemTenantID, Name: "main", Builtin: true})

	err := e.slotSvc.Delete(ctx, entity.SystemTenantID, "main")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSlotProtected, errors.AsAppError(err).Code)

	require.NoError(t, e.slotSvc.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "batch"}))
	require.NoError(t, e.slotSvc.Delete(ctx, "t1", "batch"))

	err = e.slotSvc.Delete(ctx, "t1", "batch")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSlotNotFound, errors.AsAppError(err).Code)
}

func TestSlotListMergesSystemSlots(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_ = e.slots.Create(ctx, &entity.UsagePolicySlot{TenantID: entity.SystemTenantID, Name: "main", Builtin: true})
	_ = e.slots.Create(ctx, &entity.UsagePolicySlot{TenantID: entity.SystemTenantID, Name: "fast", Builtin: true})
	_ = e.slots.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "main"})

	slots, err := e.slotSvc.List(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	byName := make(map[string]*entity.UsagePolicySlot, len(slots))
	for _, s := range slots {
		byName[s.Name] = s
	}
	// 租户自定义的 main 遮蔽系统内置 main
	require.Contains(t, byName, "main")
	assert.Equal(t, "t1", byName["main"].TenantID)
	require.Contains(t, byName, "fast")
	assert.Equal(t, entity.SystemTenantID, byName["fast"].TenantID)
}

func TestSlotGetFallsBackToSystem(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_ = e.slots.Create(ctx, &entity.UsagePolicySlot{TenantID: entity.SystemTenantID, Name: "main", Builtin: true})
	_ = e.slots.Create(ctx, &entity.UsagePolicySlot{TenantID: "t1", Name: "fast"})

	// 租户无同名槽位时回落到系统槽位
	slot, err := e.slotSvc.Get(ctx, "t1", "main")
	require.NoError(t, err)
	assert.Equal(t, entity.SystemTenantID, slot.TenantID)
	assert.True(t, slot.Builtin)

	slot, err = e.slotSvc.Get(ctx, "t1", "fast")
	require.NoError(t, err)
	assert.Equal(t, "t1", slot.TenantID)

	_, err = e.slotSvc.Get(ctx, "t1", "reason")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSlotNotFound, errors.AsAppError(err).Code)
}
