package service

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubmedia/internal/model"
	"clubmedia/internal/storage"
	storeMocks "clubmedia/internal/storage/mocks"
)

const testPublicBase = "https://club-media.s3.eu-central-1.amazonaws.com"

func TestUploadService_IssueUpload(t *testing.T) {
	ctx := context.Background()
	keyPattern := regexp.MustCompile(`^highlights/\d{13}-[a-z0-9]{12}\.mp4$`)

	tests := []struct {
		name       string
		req        model.UploadRequest
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
		wantErrMsg string
		checkGrant func(t *testing.T, g *model.UploadGrant)
	}{
		{
			name: "happy path",
			req: model.UploadRequest{
				FileName:    "goal.mp4",
				ContentType: "video/mp4",
				Size:        10 << 20,
				Folder:      model.FolderHighlights,
			},
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("PresignPut", ctx, mock.MatchedBy(func(key string) bool {
					return keyPattern.MatchString(key)
				}), "video/mp4", storage.PresignExpiry).
					Return("https://signed.example/put", map[string]string{"Content-Type": "video/mp4"}, nil)
				mStore.On("PublicURL", mock.MatchedBy(func(key string) bool {
					return keyPattern.MatchString(key)
				})).Return(func(key string) string { return testPublicBase + "/" + key })
			},
			checkGrant: func(t *testing.T, g *model.UploadGrant) {
				assert.Equal(t, "https://signed.example/put", g.UploadURL)
				assert.Regexp(t, keyPattern, g.Key)
				assert.Equal(t, testPublicBase+"/"+g.Key, g.PublicURL)
				assert.Equal(t, "video/mp4", g.Headers["Content-Type"])
			},
		},
		{
			name:       "missing file name",
			req:        model.UploadRequest{ContentType: "video/mp4", Folder: model.FolderHighlights},
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrFileNameRequired,
		},
		{
			name:       "missing content type",
			req:        model.UploadRequest{FileName: "goal.mp4", Folder: model.FolderHighlights},
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrContentTypeRequired,
		},
		{
			name:       "unknown folder",
			req:        model.UploadRequest{FileName: "goal.mp4", ContentType: "video/mp4", Folder: "attic"},
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrInvalidFolder,
		},
		{
			name: "oversized file reports rounded MiB",
			req: model.UploadRequest{
				FileName:    "match.mp4",
				ContentType: "video/mp4",
				Size:        210 << 20,
				Folder:      model.FolderHighlights,
			},
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErrMsg: "210 MiB",
		},
		{
			name: "presign error",
			req: model.UploadRequest{
				FileName:    "goal.mp4",
				ContentType: "video/mp4",
				Folder:      model.FolderHighlights,
			},
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("PresignPut", ctx, mock.Anything, "video/mp4", storage.PresignExpiry).
					Return("", nil, errors.New("signer unavailable"))
			},
			wantErrMsg: "presign upload: signer unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			svc := NewUploadService(mStore)

			tt.setupMocks(mStore)

			grant, err := svc.IssueUpload(ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				if tt.checkGrant != nil {
					tt.checkGrant(t, grant)
				}
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestUploadService_IssueUpload_NoStorage(t *testing.T) {
	svc := NewUploadService(nil)
	_, err := svc.IssueUpload(context.Background(), model.UploadRequest{
		FileName:    "goal.mp4",
		ContentType: "video/mp4",
		Folder:      model.FolderHighlights,
	})
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

func TestUploadService_ProxyUpload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         model.UploadRequest
		body        string
		setupMocks  func(mStore *storeMocks.MockStorage)
		wantErr     error
		wantErrMsg  string
		noStoreCall bool
		wantURL     string
	}{
		{
			name: "happy path keeps declared content type",
			req: model.UploadRequest{
				FileName:    "goal.mp4",
				ContentType: "video/mp4",
				Size:        11,
				Folder:      model.FolderHighlights,
			},
			body: "hello world",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "highlights/") && strings.HasSuffix(key, ".mp4")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.Size == 11 && opt.ContentType == "video/mp4"
				})).Return(storage.ObjectInfo{Size: 11}, nil)
				mStore.On("PublicURL", mock.Anything).
					Return(func(key string) string { return testPublicBase + "/" + key })
			},
		},
		{
			name: "generic content type inferred from extension",
			req: model.UploadRequest{
				FileName:    "clip.mov",
				ContentType: "application/octet-stream",
				Size:        5,
				Folder:      model.FolderHighlights,
			},
			body: "bytes",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "video/quicktime"
				})).Return(storage.ObjectInfo{}, nil)
				mStore.On("PublicURL", mock.Anything).
					Return(func(key string) string { return testPublicBase + "/" + key })
			},
		},
		{
			name: "unknown extension defaults to mp4",
			req: model.UploadRequest{
				FileName: "clip.raw",
				Size:     5,
				Folder:   model.FolderHighlights,
			},
			body: "bytes",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "video/mp4"
				})).Return(storage.ObjectInfo{}, nil)
				mStore.On("PublicURL", mock.Anything).
					Return(func(key string) string { return testPublicBase + "/" + key })
			},
		},
		{
			name: "byte count mismatch is an integrity error",
			req: model.UploadRequest{
				FileName: "goal.mp4",
				Size:     100,
				Folder:   model.FolderHighlights,
			},
			body:        "only a few bytes",
			setupMocks:  func(mStore *storeMocks.MockStorage) {},
			wantErrMsg:  "integrity",
			noStoreCall: true,
		},
		{
			name: "oversized declared size rejected before reading",
			req: model.UploadRequest{
				FileName: "match.mp4",
				Size:     201 << 20,
				Folder:   model.FolderHighlights,
			},
			body:        "bytes",
			setupMocks:  func(mStore *storeMocks.MockStorage) {},
			wantErrMsg:  "201 MiB",
			noStoreCall: true,
		},
		{
			name: "storage write error",
			req: model.UploadRequest{
				FileName: "goal.mp4",
				Size:     5,
				Folder:   model.FolderHighlights,
			},
			body: "bytes",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:        "unknown folder",
			req:         model.UploadRequest{FileName: "goal.mp4", Size: 5, Folder: "attic"},
			body:        "bytes",
			setupMocks:  func(mStore *storeMocks.MockStorage) {},
			wantErr:     ErrInvalidFolder,
			noStoreCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			svc := NewUploadService(mStore)

			tt.setupMocks(mStore)

			url, err := svc.ProxyUpload(ctx, strings.NewReader(tt.body), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.True(t, strings.HasPrefix(url, testPublicBase+"/"))
			}
			if tt.noStoreCall {
				mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestUploadService_ProxyUpload_IntegrityErrorType(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	svc := NewUploadService(mStore)

	_, err := svc.ProxyUpload(context.Background(), strings.NewReader("short"), model.UploadRequest{
		FileName: "goal.mp4",
		Size:     99,
		Folder:   model.FolderHighlights,
	})

	var integrityErr *IntegrityError
	assert.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, int64(99), integrityErr.Declared)
	assert.Equal(t, int64(5), integrityErr.Received)
}

func TestUploadService_ProxyUpload_NilReader(t *testing.T) {
	svc := NewUploadService(new(storeMocks.MockStorage))
	var r io.Reader
	_, err := svc.ProxyUpload(context.Background(), r, model.UploadRequest{
		FileName: "goal.mp4",
		Folder:   model.FolderHighlights,
	})
	assert.ErrorIs(t, err, ErrReaderNil)
}

func TestUploadService_DeleteByURL(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		url        string
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "strips public base to recover the key",
			url:  testPublicBase + "/highlights/1700000000000-a1b2c3d4e5f6.mp4",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("PublicURL", "").Return(testPublicBase + "/")
				mStore.On("Delete", ctx, "highlights/1700000000000-a1b2c3d4e5f6.mp4").Return(nil)
			},
		},
		{
			name: "foreign base falls back to the url path",
			url:  "https://cdn.example.com/profile-pics/1700000000000-a1b2c3d4e5f6.jpg",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("PublicURL", "").Return(testPublicBase + "/")
				mStore.On("Delete", ctx, "profile-pics/1700000000000-a1b2c3d4e5f6.jpg").Return(nil)
			},
		},
		{
			name:       "empty url",
			url:        "",
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErr:    ErrURLRequired,
		},
		{
			name: "storage error surfaces",
			url:  testPublicBase + "/highlights/1700000000000-a1b2c3d4e5f6.mp4",
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("PublicURL", "").Return(testPublicBase + "/")
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("access denied"))
			},
			wantErrMsg: "delete storage object: access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			svc := NewUploadService(mStore)

			tt.setupMocks(mStore)

			err := svc.DeleteByURL(ctx, tt.url)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestUploadService_DeleteByURL_Idempotent(t *testing.T) {
	// The storage layer treats an absent object as deleted, so calling twice with
	// the same URL succeeds both times.
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mStore.On("PublicURL", "").Return(testPublicBase + "/")
	mStore.On("Delete", ctx, "highlights/1700000000000-a1b2c3d4e5f6.mp4").Return(nil).Twice()

	svc := NewUploadService(mStore)
	url := testPublicBase + "/highlights/1700000000000-a1b2c3d4e5f6.mp4"

	assert.NoError(t, svc.DeleteByURL(ctx, url))
	assert.NoError(t, svc.DeleteByURL(ctx, url))
	mStore.AssertExpectations(t)
}
