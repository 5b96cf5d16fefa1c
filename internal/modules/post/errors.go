package post

import "github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"

var ErrPostNotFound = apperr.New(apperr.NotFound, "No post found with that id")
