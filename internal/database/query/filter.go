// Package query собирает условия поиска фильмов как пары "предикат + параметры".
//
// Один и тот же Builder используется SQL-хранилищами (Clause/Args) и
// хранилищем в памяти (Match), поэтому семантика фильтра задаётся в одном месте.
package query

import (
	"strings"

	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// Predicate — одно условие. Clause использует плейсхолдеры "?".
type Predicate struct {
	Clause string
	Args   []any
	Match  func(domain.Movie) bool
}

// Builder накапливает условия, объединяемые через AND.
type Builder struct {
	predicates []Predicate
}

// Add добавляет условие.
func (b *Builder) Add(p Predicate) *Builder {
	b.predicates = append(b.predicates, p)
	return b
}

// Predicates возвращает накопленные условия.
func (b *Builder) Predicates() []Predicate {
	return b.predicates
}

// Where рендерит "WHERE a AND b" и параметры по порядку. Без условий — пустая строка.
func (b *Builder) Where() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(b.predicates))
	var args []any
	for _, p := range b.predicates {
		clauses = append(clauses, p.Clause)
		args = append(args, p.Args...)
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// Matches проверяет фильм по всем условиям.
func (b *Builder) Matches(m domain.Movie) bool {
	for _, p := range b.predicates {
		if !p.Match(m) {
			return false
		}
	}
	return true
}

// MovieFilter строит условия для domain.MovieFilter.
func MovieFilter(f domain.MovieFilter) *Builder {
	b := &Builder{}

	if f.Title != nil {
		needle := strings.ToLower(*f.Title)
		pattern := "%" + EscapeLike(*f.Title) + "%"
		b.Add(Predicate{
			Clause: "(LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))",
			Args:   []any{pattern, pattern},
			Match: func(m domain.Movie) bool {
				return strings.Contains(strings.ToLower(m.Title), needle) ||
					strings.Contains(strings.ToLower(m.Description), needle)
			},
		})
	}

	if f.Genre != nil {
		genre := *f.Genre
		b.Add(Predicate{
			Clause: "genre = ?",
			Args:   []any{genre},
			Match:  func(m domain.Movie) bool { return m.Genre == genre },
		})
	}

	if f.ReleaseYear != nil {
		year := *f.ReleaseYear
		b.Add(Predicate{
			Clause: "release_year = ?",
			Args:   []any{year},
			Match:  func(m domain.Movie) bool { return m.ReleaseYear == year },
		})
	}

	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike экранирует спецсимволы LIKE (escape-символ по умолчанию в Postgres — "\").
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
