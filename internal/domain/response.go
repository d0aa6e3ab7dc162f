package domain

// Response is the uniform envelope returned by every catalog facade call.
// When Success is false, Data holds a zero value and Error carries a
// human-readable message; callers must branch on Success and never read
// Data otherwise.
type Response[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Response[T] {
	return Response[T]{Data: data, Success: true}
}

// OKMessage wraps data in a successful envelope with a user-facing message.
func OKMessage[T any](data T, message string) Response[T] {
	return Response[T]{Data: data, Success: true, Message: message}
}

// Fail builds a semantic-rejection envelope. Data is left at its zero value.
func Fail[T any](errMsg string) Response[T] {
	return Response[T]{Success: false, Error: errMsg}
}

// StatusMessage is the payload of operations whose only result is a
// user-facing confirmation.
type StatusMessage struct {
	Message string `json:"message"`
}

// Pagination describes the window a paginated response covers.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginated is the envelope for list operations that page through results.
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Success    bool       `json:"success"`
}

// Paginate slices items down to the requested page. Pages are 1-based;
// a page past the end yields an empty (non-nil) slice, not an error.
func Paginate[T any](items []T, page, limit int) Paginated[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Paginated[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
		Success: true,
	}
}
