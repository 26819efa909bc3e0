package service

import "errors"

var (
	// ErrStorage marks a database/collaborator failure.
	ErrStorage = errors.New("storage failure")

	// ErrRateLimited is returned when the language-model provider signals
	// rate limiting.
	ErrRateLimited = errors.New("language model rate limited")

	// ErrNoSelection is returned when the reply carries no SELECTED_IDS line.
	ErrNoSelection = errors.New("no SELECTED_IDS found in response")

	// ErrNoAnalyses is returned when no analysis block could be located for
	// any selected ID.
	ErrNoAnalyses = errors.New("no valid analysis blocks found in response")

	// ErrNoRecommendations is returned when every located block failed to
	// parse or cross-reference.
	ErrNoRecommendations = errors.New("no valid recommendations could be created")
)
