package listing

import (
	"slices"
	"strconv"
	"strings"
)

// Favorites is the set of favorited product ids on the listing page. It
// lives in the fav query parameter as a comma separated list.
type Favorites map[int]struct{}

// ParseFavorites reads "3,1,7". Unknown tokens are skipped.
func ParseFavorites(raw string) Favorites {
	f := Favorites{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			continue
		}
		f[id] = struct{}{}
	}
	return f
}

func (f Favorites) Has(id int) bool {
	_, ok := f[id]
	return ok
}

// Toggle returns a copy of f with id flipped.
func (f Favorites) Toggle(id int) Favorites {
	out := make(Favorites, len(f)+1)
	for k := range f {
		out[k] = struct{}{}
	}
	if _, ok := out[id]; ok {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the ids in ascending order.
func (f Favorites) IDs() []int {
	ids := make([]int, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (f Favorites) String() string {
	ids := f.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
