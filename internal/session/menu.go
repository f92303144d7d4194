package session

import (
	"net/http"
	"slices"

	"github.com/pkg/errors"
)

// MenuOpen returns the labels of the navigation groups the user has
// explicitly opened. The set lives inside the session and dies with it.
func (s *Store) MenuOpen(r *http.Request) []string {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return nil
	}

	open, _ := sess.Values[valueMenu].([]string)

	return open
}

// ToggleMenu flips one group's membership in the open set, leaving the
// other groups untouched. Multiple groups may be open at once.
func (s *Store) ToggleMenu(w http.ResponseWriter, r *http.Request, label string) ([]string, error) {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	open, _ := sess.Values[valueMenu].([]string)

	if index := slices.Index(open, label); index != -1 {
		open = slices.Delete(open, index, index+1)
	} else {
		open = append(open, label)
	}

	sess.Values[valueMenu] = open

	if err := sess.Save(r, w); err != nil {
		return nil, errors.WithStack(err)
	}

	return open, nil
}
