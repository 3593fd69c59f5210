package service

import (
	"context"
	"fmt"

	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/pkg/embedding"
	"ai-minutes-be/pkg/rag"
)

// vectorRetriever adapts the pgvector repository to the rag.Retriever
// contract. A collection that was never indexed simply yields zero
// documents, the engine treats that as an empty context.
type vectorRetriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

var _ rag.Retriever = &vectorRetriever{}

func NewVectorRetriever(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider) rag.Retriever {
	return &vectorRetriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (r *vectorRetriever) Retrieve(ctx context.Context, collection string, question string, topK int) ([]rag.Document, error) {
	res, err := r.embeddingProvider.Generate(question, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.DocumentEmbeddingRepository().SearchSimilar(ctx, collection, res.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("search collection %s: %w", collection, err)
	}

	docs := make([]rag.Document, len(rows))
	for i, row := range rows {
		docs[i] = rag.Document{Content: row.Document}
	}
	return docs, nil
}
