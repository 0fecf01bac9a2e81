package utils

// PageMeta describes a slice of a larger result set.
type PageMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Paginate slices data[offset : offset+limit] and reports page metadata.
// Out-of-range windows yield an empty page, never a panic.
func Paginate[T any](data []T, limit, offset int) ([]T, PageMeta) {
	total := len(data)

	start := offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}

	end := start + limit
	if limit < 0 {
		end = start
	}
	if end > total {
		end = total
	}

	meta := PageMeta{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasNext: offset+limit < total,
		HasPrev: offset > 0,
	}

	return data[start:end], meta
}
