package utils

func CopySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	sliceCopy := make([]T, len(s))
	copy(sliceCopy, s)
	return sliceCopy
}

func MapSlice[T any, U any](s []T, mapper func(e T) U) []U {
	result := make([]U, len(s))

	for i, e := range s {
		result[i] = mapper(e)
	}

	return result
}

func FilterSlice[T any](s []T, filter func(e T) bool) []T {
	result := make([]T, 0)

	for _, e := range s {
		if filter(e) {
			result = append(result, e)
		}
	}

	return result
}
