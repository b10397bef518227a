package handler

import (
	"context"
	"testing"

	"warranty-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotificationService struct {
	notices []domain.RegistrationNotice
}

func (s *recordingNotificationService) ProcessRegistration(ctx context.Context, notice domain.RegistrationNotice) error {
	s.notices = append(s.notices, notice)
	return nil
}

func TestRegistrationHandler(t *testing.T) {
	testCases := []struct {
		name    string
		message string
		wantErr bool
		want    *domain.RegistrationNotice
	}{
		{
			name:    "valid notice",
			message: `{"registration_id":"reg-1","email":"amy@example.com","name":"Amy","shop":"north","invoice":"INV-1","product_detail":"Mini x1","purchase_date":"2026-09-01T00:00:00Z"}`,
			want: &domain.RegistrationNotice{
				RegistrationID: "reg-1",
				Email:          "amy@example.com",
				Name:           "Amy",
				Shop:           "north",
				Invoice:        "INV-1",
				ProductDetail:  "Mini x1",
			},
		},
		{
			name:    "malformed payload",
			message: `{"registration_id":`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &recordingNotificationService{}
			err := NewRegistrationHandler(svc).HandleMessage(context.Background(), []byte(tc.message))
			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, svc.notices)
				return
			}
			require.NoError(t, err)
			require.Len(t, svc.notices, 1)
			got := svc.notices[0]
			assert.Equal(t, "2026-09-01", got.PurchaseDate.Format(domain.DateLayout))
			got.PurchaseDate = tc.want.PurchaseDate
			assert.Equal(t, *tc.want, got)
		})
	}
}
