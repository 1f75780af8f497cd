package postgres

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/ahbm/hospital-backend/internal/domain/listquery"
)

// column descreve a coluna de um campo da API
type column struct {
	name    string
	boolean bool
}

// columns mapeia campos da API para colunas da tabela
type columns map[string]column

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyFilters traduz os predicados em cláusulas WHERE.
// Campos sem coluna mapeada são ignorados.
func applyFilters(db *gorm.DB, filters map[string]listquery.Predicate, cols columns) *gorm.DB {
	// ordem estável para que o SQL gerado seja determinístico
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		c, ok := cols[field]
		if !ok {
			continue
		}
		col := c.name
		pred := filters[field]

		var value interface{} = pred.Value
		if c.boolean {
			b, err := strconv.ParseBool(pred.Value)
			if err != nil {
				continue
			}
			value = b
		}

		switch pred.Operator {
		case listquery.OpEq:
			db = db.Where(col+" = ?", value)
		case listquery.OpNeq:
			db = db.Where(col+" <> ?", value)
		case listquery.OpGt:
			db = db.Where(col+" > ?", pred.Value)
		case listquery.OpGte:
			db = db.Where(col+" >= ?", pred.Value)
		case listquery.OpLt:
			db = db.Where(col+" < ?", pred.Value)
		case listquery.OpLte:
			db = db.Where(col+" <= ?", pred.Value)
		case listquery.OpLike, listquery.OpContains:
			pattern := "%" + likeEscaper.Replace(strings.ToLower(pred.Value)) + "%"
			db = db.Where("LOWER("+col+`) LIKE ? ESCAPE '\'`, pattern)
		}
	}

	return db
}

// applyOrder aplica a ordenação pedida; id desempata para paginação estável
func applyOrder(db *gorm.DB, orderBy *listquery.Sort, cols columns) *gorm.DB {
	if orderBy != nil {
		if c, ok := cols[orderBy.Field]; ok {
			dir := "DESC"
			if orderBy.Direction == listquery.Asc {
				dir = "ASC"
			}
			db = db.Order(c.name + " " + dir)
		}
	}
	return db.Order("id ASC")
}

// findPage conta e busca a página numa única transação, para que total e
// itens venham do mesmo estado do banco.
func findPage[M any](ctx context.Context, base *gorm.DB, params listquery.Params, cols columns, dest *[]M, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var total int64

	err := base.Transaction(func(tx *gorm.DB) error {
		filtered := applyFilters(tx.Model(new(M)), params.Filters, cols)

		if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return err
		}

		query := applyOrder(filtered.Session(&gorm.Session{}), params.OrderBy, cols).
			Scopes(scopes...).
			Limit(params.Limit).
			Offset(params.Skip)

		return query.Find(dest).Error
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
