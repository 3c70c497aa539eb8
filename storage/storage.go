package storage

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"skillshare-backend/storage/drive"
	"skillshare-backend/storage/filesystem"
	"skillshare-backend/storage/memory"
	"skillshare-backend/storage/s3"
)

// MediaStore is the narrow blob-storage contract the stories subsystem
// depends on. Store returns an opaque reference that is only ever handed
// back to Delete.
type MediaStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// FromEnv selects a media store backend from STORAGE_TYPE.
func FromEnv() MediaStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store MediaStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		basePath := os.Getenv("MEDIA_STORAGE_PATH")
		if basePath == "" {
			basePath = "./media" // Default path
		}
		storageField["basePath"] = basePath
		store = filesystem.NewStore(basePath)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		store = s3.NewStore(bucketName)
	case "drive":
		credsFile := os.Getenv("DRIVE_JSON")
		folderID := os.Getenv("GOOGLE_DRIVE_FOLDER_ID")
		if credsFile == "" {
			logrus.Fatal("DRIVE_JSON environment variable must be set for drive storage type")
		}
		var err error
		store, err = drive.NewStore(credsFile, folderID)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize Google Drive storage")
		}
	default:
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	}
	logrus.WithFields(storageField).Info("Use media storage")
	return store
}
