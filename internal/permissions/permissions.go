package permissions

// Role e o papel de um membro dentro de uma missao
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleLider      Role = "lider"
	RoleEditor     Role = "editor"
	RoleFinanceiro Role = "financeiro"
	RoleVoluntario Role = "voluntario"
	RoleApoiador   Role = "apoiador"
)

// Capability e uma acao que um papel pode executar
type Capability string

const (
	CapAll              Capability = "*"
	CapContentWrite     Capability = "content.write"
	CapContentPublish   Capability = "content.publish"
	CapContentReadInt   Capability = "content.read_internal"
	CapOperationsUse    Capability = "operations.use"
	CapSupporterPromote Capability = "supporter.promote"
	CapSupporterApply   Capability = "supporter.apply"
	CapFinanceRead      Capability = "finance.read"
	CapFinanceWrite     Capability = "finance.write"
	CapDonorsRead       Capability = "donors.read"
	CapUpdatesSubscribe Capability = "updates.subscribe"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleAdmin: {
		CapAll: {},
	},
	RoleLider: {
		CapContentWrite:     {},
		CapContentPublish:   {},
		CapOperationsUse:    {},
		CapSupporterPromote: {},
	},
	RoleEditor: {
		CapContentWrite:   {},
		CapContentPublish: {},
	},
	RoleFinanceiro: {
		CapFinanceRead:  {},
		CapFinanceWrite: {},
		CapDonorsRead:   {},
	},
	RoleVoluntario: {
		CapOperationsUse:  {},
		CapContentReadInt: {},
	},
	RoleApoiador: {
		CapSupporterApply:   {},
		CapUpdatesSubscribe: {},
	},
}

// RoleLabels mapeia papeis para os rotulos exibidos no painel
var RoleLabels = map[Role]string{
	RoleAdmin:      "Administrador",
	RoleLider:      "Lider",
	RoleEditor:     "Editor",
	RoleFinanceiro: "Financeiro",
	RoleVoluntario: "Voluntario",
	RoleApoiador:   "Apoiador",
}

// Capabilities devolve o conjunto de capacidades de um papel. Papel
// desconhecido (ou usuario fora da missao) nao tem capacidade alguma.
func Capabilities(role Role) []Capability {
	caps, ok := roleCapabilities[role]
	if !ok {
		return nil
	}
	out := make([]Capability, 0, len(caps))
	for c := range caps {
		out = append(out, c)
	}
	return out
}

// HasCapability verifica se um papel possui uma capacidade. Admin ("*")
// passa em qualquer verificacao.
func HasCapability(role Role, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	if _, all := caps[CapAll]; all {
		return true
	}
	_, has := caps[cap]
	return has
}
