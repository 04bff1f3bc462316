package tests

// Mock generation for handler tests. The handwritten mocks in
// services_mock_test.go follow the same shape.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name "TaskService|SubtaskService|CommentService|FileService|ProjectService|UserService" --dir ../../../../core/ports --output ./mocks --outpkg mocks --with-expecter
