package tools

import "github.com/booksmcp/booksmcp/pkg/types"

// Kind enumerates the operations booksmcp exposes as tools.
type Kind int

const (
	KindListBooks Kind = iota
	KindCreateBook
	KindGetBook
	KindUpdateBook
	KindDeleteBook
)

// Tool names, as seen by clients.
const (
	ListBooksToolName  = "list_books"
	CreateBookToolName = "create_book"
	GetBookToolName    = "get_book"
	UpdateBookToolName = "update_book"
	DeleteBookToolName = "delete_book"
)

// String returns the tool name of k.
func (k Kind) String() string {
	switch k {
	case KindListBooks:
		return ListBooksToolName
	case KindCreateBook:
		return CreateBookToolName
	case KindGetBook:
		return GetBookToolName
	case KindUpdateBook:
		return UpdateBookToolName
	case KindDeleteBook:
		return DeleteBookToolName
	default:
		return "unknown"
	}
}

// entry binds an operation kind to its published definition.
// action describes the operation in catch-all error messages ("Error <action>: ...").
type entry struct {
	kind       Kind
	action     string
	definition types.ToolDefinition
}

const publishedDateDescription = "Published date of the book in ISO 8601 UTC format " +
	"(must end with 'Z', e.g., '2024-04-11T00:00:00Z')"

// catalog is the fixed list of tools, in the order they are listed to clients.
var catalog = []entry{
	{
		kind:   KindListBooks,
		action: "retrieving books",
		definition: types.ToolDefinition{
			Name:        ListBooksToolName,
			Description: "Retrieve all books from the database",
			InputSchema: types.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
				Required:   []string{},
			},
			Annotations: &types.ToolAnnotations{ReadOnly: true, Idempotent: true},
		},
	},
	{
		kind:   KindCreateBook,
		action: "creating book",
		definition: types.ToolDefinition{
			Name:        CreateBookToolName,
			Description: "Create a new book in the database",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"book_data": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":            property("integer", "Unique identifier for the book"),
							"title":         property("string", "Title of the book"),
							"author":        property("string", "Author of the book"),
							"isbn":          property("string", "ISBN of the book"),
							"publishedDate": property("string", publishedDateDescription),
						},
						"required": []string{"title", "author"},
					},
				},
				Required: []string{"book_data"},
			},
			Annotations: &types.ToolAnnotations{},
		},
	},
	{
		kind:   KindGetBook,
		action: "retrieving book",
		definition: types.ToolDefinition{
			Name:        GetBookToolName,
			Description: "Retrieve a book by ID",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"book_id": property("integer", "ID of the book to retrieve"),
				},
				Required: []string{"book_id"},
			},
			Annotations: &types.ToolAnnotations{ReadOnly: true, Idempotent: true},
		},
	},
	{
		kind:   KindUpdateBook,
		action: "updating book",
		definition: types.ToolDefinition{
			Name:        UpdateBookToolName,
			Description: "Update an existing book",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"book_id": property("integer", "ID of the book to update"),
					"book_data": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":            property("integer", "ID of the book (must match book_id)"),
							"title":         property("string", "New title of the book"),
							"author":        property("string", "New author of the book"),
							"isbn":          property("string", "New ISBN of the book"),
							"publishedDate": property("string", "New published date of the book (ISO 8601 format)"),
						},
					},
				},
				Required: []string{"book_id", "book_data"},
			},
			Annotations: &types.ToolAnnotations{Idempotent: true},
		},
	},
	{
		kind:   KindDeleteBook,
		action: "deleting book",
		definition: types.ToolDefinition{
			Name:        DeleteBookToolName,
			Description: "Delete a book by ID",
			InputSchema: types.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"book_id": property("integer", "ID of the book to delete"),
				},
				Required: []string{"book_id"},
			},
			Annotations: &types.ToolAnnotations{Destructive: true, Idempotent: true},
		},
	},
}

func property(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}
