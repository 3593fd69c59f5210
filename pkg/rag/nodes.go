package rag

import "context"

// Router decides which datasource a question should hit first.
type Router interface {
	Route(ctx context.Context, question string) (*RouteQuery, error)
}

// Retriever fetches candidate documents from one collection.
type Retriever interface {
	Retrieve(ctx context.Context, collection string, question string, topK int) ([]Document, error)
}

// Grader judges whether one document is relevant to the question.
type Grader interface {
	Grade(ctx context.Context, question string, doc Document) (*GradeDocuments, error)
}

// Generator produces an answer from the labeled context block.
type Generator interface {
	Generate(ctx context.Context, question string, contextBlock string) (string, error)
}

// Validator checks the answer against the same context block.
type Validator interface {
	Validate(ctx context.Context, question string, answer string, contextBlock string) (*GenerationValidation, error)
}
