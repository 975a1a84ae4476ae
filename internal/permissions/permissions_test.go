package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCapability(t *testing.T) {
	t.Run("admin passa em qualquer verificacao", func(t *testing.T) {
		assert.True(t, HasCapability(RoleAdmin, CapFinanceWrite))
		assert.True(t, HasCapability(RoleAdmin, CapContentPublish))
		assert.True(t, HasCapability(RoleAdmin, Capability("qualquer.coisa")))
	})

	t.Run("financeiro escreve financas mas nao conteudo", func(t *testing.T) {
		assert.True(t, HasCapability(RoleFinanceiro, CapFinanceRead))
		assert.True(t, HasCapability(RoleFinanceiro, CapFinanceWrite))
		assert.True(t, HasCapability(RoleFinanceiro, CapDonorsRead))
		assert.False(t, HasCapability(RoleFinanceiro, CapContentWrite))
	})

	t.Run("lider opera mas nao mexe em financas", func(t *testing.T) {
		assert.True(t, HasCapability(RoleLider, CapOperationsUse))
		assert.True(t, HasCapability(RoleLider, CapSupporterPromote))
		assert.False(t, HasCapability(RoleLider, CapFinanceWrite))
	})

	t.Run("voluntario le conteudo interno", func(t *testing.T) {
		assert.True(t, HasCapability(RoleVoluntario, CapContentReadInt))
		assert.False(t, HasCapability(RoleVoluntario, CapContentPublish))
	})

	t.Run("papel desconhecido nao tem nada", func(t *testing.T) {
		assert.False(t, HasCapability(Role("convidado"), CapFinanceRead))
		assert.False(t, HasCapability(Role(""), CapOperationsUse))
	})
}

func TestCapabilities(t *testing.T) {
	t.Run("papel desconhecido retorna vazio", func(t *testing.T) {
		assert.Empty(t, Capabilities(Role("convidado")))
	})

	t.Run("apoiador tem exatamente duas capacidades", func(t *testing.T) {
		caps := Capabilities(RoleApoiador)
		assert.Len(t, caps, 2)
		assert.Contains(t, caps, CapSupporterApply)
		assert.Contains(t, caps, CapUpdatesSubscribe)
	})
}

func TestRoleLabels(t *testing.T) {
	for role := range roleCapabilities {
		assert.NotEmpty(t, RoleLabels[role], "papel %s sem rotulo", role)
	}
}
