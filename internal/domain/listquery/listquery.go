// Package listquery interpreta os parâmetros de listagem
// (?page=&limit=&sort=campo;asc&filter=campo:op[valor],...) contra listas
// de campos permitidos. Cláusulas com campo ou operador desconhecido são
// descartadas sem erro.
package listquery

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Operator é um operador de comparação aceito no filtro
type Operator string

const (
	OpEq       Operator = "eq"
	OpNeq      Operator = "neq"
	OpGt       Operator = "gt"
	OpGte      Operator = "gte"
	OpLt       Operator = "lt"
	OpLte      Operator = "lte"
	OpLike     Operator = "like"
	OpContains Operator = "contains"
)

var operators = map[Operator]struct{}{
	OpEq: {}, OpNeq: {}, OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {}, OpLike: {}, OpContains: {},
}

// IsValid verifica se o operador é suportado
func (o Operator) IsValid() bool {
	_, ok := operators[o]
	return ok
}

// IsSubstring indica busca parcial sem diferenciar maiúsculas
func (o Operator) IsSubstring() bool {
	return o == OpLike || o == OpContains
}

// Direction é a direção de ordenação
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Predicate é a condição aplicada a um campo
type Predicate struct {
	Operator Operator
	Value    string
}

// Sort é a ordenação pedida
type Sort struct {
	Field     string
	Direction Direction
}

// Options contém as listas de campos permitidos de um endpoint
type Options struct {
	FilterFields []string
	SortFields   []string
}

// Params é o resultado da interpretação
type Params struct {
	Page    int
	Limit   int
	Skip    int
	OrderBy *Sort
	Filters map[string]Predicate
}

// Parse interpreta a query string. Nunca falha: entradas inválidas caem nos padrões.
func Parse(values url.Values, opts Options) Params {
	page := positiveInt(values.Get("page"), DefaultPage)
	limit := positiveInt(values.Get("limit"), DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:    page,
		Limit:   limit,
		Skip:    (page - 1) * limit,
		OrderBy: parseSort(values.Get("sort"), opts.SortFields),
		Filters: parseFilters(values.Get("filter"), opts.FilterFields),
	}
}

// Values lê a query string crua separando só por "&". url.ParseQuery
// descarta pares com ";" sem escape, e "sort=campo;asc" precisa dele.
func Values(rawQuery string) url.Values {
	values := make(url.Values)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil || key == "" {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		values.Add(key, value)
	}
	return values
}

// ParseRaw é Parse sobre a query string crua
func ParseRaw(rawQuery string, opts Options) Params {
	return Parse(Values(rawQuery), opts)
}

// Default retorna a primeira página com o limite padrão
func Default() Params {
	return Parse(nil, Options{})
}

// TotalPages calcula o número de páginas para o total informado
func (p Params) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// WithFilter retorna uma cópia com o predicado forçado (usado pelas rotas públicas)
func (p Params) WithFilter(field string, pred Predicate) Params {
	filters := make(map[string]Predicate, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[field] = pred
	p.Filters = filters
	return p
}

// WithDefaultSort aplica a ordenação padrão quando nenhuma foi pedida
func (p Params) WithDefaultSort(field string, dir Direction) Params {
	if p.OrderBy == nil {
		p.OrderBy = &Sort{Field: field, Direction: dir}
	}
	return p
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// parseSort lê "campo;direção"; qualquer direção diferente de "asc" vira "desc"
func parseSort(raw string, allowed []string) *Sort {
	field, direction, ok := strings.Cut(raw, ";")
	if !ok || field == "" || direction == "" || !contains(allowed, field) {
		return nil
	}

	dir := Desc
	if direction == string(Asc) {
		dir = Asc
	}
	return &Sort{Field: field, Direction: dir}
}

// parseFilters lê "campo:op[valor],campo2:op2[valor2]".
// Uma cláusula posterior para o mesmo campo substitui a anterior.
func parseFilters(raw string, allowed []string) map[string]Predicate {
	filters := make(map[string]Predicate)
	if raw == "" {
		return filters
	}

	for _, clause := range strings.Split(raw, ",") {
		field, operatorValue, ok := strings.Cut(clause, ":")
		if !ok || field == "" || !contains(allowed, field) {
			continue
		}

		op, value, ok := strings.Cut(operatorValue, "[")
		if !ok {
			continue
		}
		value = strings.TrimSuffix(value, "]")

		operator := Operator(op)
		if !operator.IsValid() || value == "" {
			continue
		}

		filters[field] = Predicate{Operator: operator, Value: value}
	}

	return filters
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
