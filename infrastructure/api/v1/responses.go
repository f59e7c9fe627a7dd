package v1

import (
	"github.com/unifly-app/unifly/domain/account"
	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
	"github.com/unifly-app/unifly/infrastructure/api/v1/dto"
)

func insertResponse(result document.InsertResult) dto.InsertResponse {
	return dto.InsertResponse{
		Success:      true,
		InsertedID:   result.ID,
		Acknowledged: result.Acknowledged,
	}
}

func updateResponse(result document.UpdateResult) dto.UpdateResponse {
	return dto.UpdateResponse{
		Success:       true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		Acknowledged:  result.Acknowledged,
	}
}

func deleteResponse(result document.DeleteResult) dto.DeleteResponse {
	return dto.DeleteResponse{
		Success:      true,
		DeletedCount: result.DeletedCount,
		Acknowledged: result.Acknowledged,
	}
}

func countResponse(count int64) dto.CountResponse {
	return dto.CountResponse{Success: true, Count: count}
}

func searchResponse(hits []search.Hit) dto.SearchResponse {
	results := make([]dto.SearchHit, len(hits))
	for i, hit := range hits {
		results[i] = dto.SearchHit{
			ID:      hit.ID(),
			Score:   hit.Score(),
			Text:    hit.Text(),
			Payload: hit.Payload(),
		}
	}
	return dto.SearchResponse{Success: true, Results: results}
}

func accountResponse(user account.User) dto.AccountResponse {
	return dto.AccountResponse{
		UserID:    user.UserID(),
		Email:     user.Email(),
		Name:      user.Name(),
		Role:      string(user.Role()),
		Status:    string(user.Status()),
		CreatedAt: user.CreatedAt(),
		UpdatedAt: user.UpdatedAt(),
	}
}

func accountListResponse(users []account.User) dto.AccountListResponse {
	data := make([]dto.AccountResponse, len(users))
	for i, user := range users {
		data[i] = accountResponse(user)
	}
	return dto.AccountListResponse{Data: data, TotalCount: len(data)}
}
