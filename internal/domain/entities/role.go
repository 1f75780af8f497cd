package entities

// Role representa o papel de um usuário no painel administrativo
type Role string

const (
	RoleRoot       Role = "root"
	RoleAdmin      Role = "admin"
	RoleJournalist Role = "journalist"
)

// Roles lista todos os papéis válidos, do mais alto para o mais baixo
var Roles = []Role{RoleRoot, RoleAdmin, RoleJournalist}

// rank define a hierarquia entre papéis (maior = mais privilégios)
var rank = map[Role]int{
	RoleRoot:       3,
	RoleAdmin:      2,
	RoleJournalist: 1,
}

// IsValid verifica se o papel existe
func (r Role) IsValid() bool {
	_, ok := rank[r]
	return ok
}

// Outranks verifica se r está estritamente acima de other na hierarquia
func (r Role) Outranks(other Role) bool {
	return rank[r] > rank[other]
}

// In verifica se o papel pertence ao conjunto informado
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// CanCreate informa qual papel o criador pode atribuir a um novo usuário.
// root cria admin ou journalist; admin só cria journalist (o pedido é sobrescrito).
// Nunca é possível criar um segundo root.
func (r Role) CanCreate(requested Role) (Role, bool) {
	switch r {
	case RoleRoot:
		if requested == "" {
			return RoleJournalist, true
		}
		if requested == RoleAdmin || requested == RoleJournalist {
			return requested, true
		}
		return "", false
	case RoleAdmin:
		return RoleJournalist, true
	default:
		return "", false
	}
}

// CanManage verifica se r pode editar um usuário com o papel target.
// Administradores não podem editar outros administradores nem o root.
func (r Role) CanManage(target Role) bool {
	if r == RoleRoot {
		return true
	}
	return r.Outranks(target)
}
