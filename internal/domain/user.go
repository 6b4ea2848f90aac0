package domain

type User struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Age   float64 `json:"age"`
	Email string  `json:"email"`
}

// Directory is the ordered collection of users. Methods never mutate the
// receiver; callers replace the slice they hold.
type Directory []User

// NextID returns the id for a new record: the highest id plus one, or 1 for
// an empty directory.
func (d Directory) NextID() int64 {
	var highest int64
	for _, u := range d {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}

func (d Directory) IndexOf(id int64) int {
	for i, u := range d {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (d Directory) HasEmail(email string) bool {
	for _, u := range d {
		if u.Email == email {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing array with d. The result is
// never nil so that an empty directory encodes as [].
func (d Directory) Clone() Directory {
	out := make(Directory, len(d))
	copy(out, d)
	return out
}

func (d Directory) Without(i int) Directory {
	out := make(Directory, 0, len(d))
	out = append(out, d[:i]...)
	return append(out, d[i+1:]...)
}
