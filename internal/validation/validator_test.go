package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/registry"
	"github.com/feral-file/ff-catalog-ingest/internal/validation"
)

func newValidator() *validation.Validator {
	return validation.NewValidator(registry.MustLoadDefault())
}

func TestValidator_Validate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name           string
		extraction     *domain.RawExtraction
		expectedResult validation.Result
	}{
		{
			name: "accepts a real product",
			extraction: &domain.RawExtraction{
				Provider:     "fanza",
				ProviderCode: "ssis00865",
				Title:        "新人NO.1STYLE 三上悠亜 AVデビュー",
				Description:  "国民的アイドルグループの元センターが遂にAVデビュー。",
			},
			expectedResult: validation.Accept(),
		},
		{
			name:           "nil extraction",
			extraction:     nil,
			expectedResult: validation.Reject(domain.RejectPlaceholderTitle),
		},
		{
			name: "blank title",
			extraction: &domain.RawExtraction{
				Provider:     "fanza",
				ProviderCode: "ssis00865",
				Title:        "  　 ",
			},
			expectedResult: validation.Reject(domain.RejectPlaceholderTitle),
		},
		{
			name: "provider-code placeholder title",
			extraction: &domain.RawExtraction{
				Provider:     "fanza",
				ProviderCode: "ssis00865",
				Title:        "fanza-ssis00865",
			},
			expectedResult: validation.Reject(domain.RejectPlaceholderTitle),
		},
		{
			name: "title is only the raw code",
			extraction: &domain.RawExtraction{
				Provider:     "mgs",
				ProviderCode: "259LUXU-1234",
				Title:        "259luxu-1234",
			},
			expectedResult: validation.Reject(domain.RejectPlaceholderTitle),
		},
		{
			name: "title is only the normalized id",
			extraction: &domain.RawExtraction{
				Provider:     "fanza",
				ProviderCode: "ssis00865",
				Title:        "SSIS-865",
			},
			expectedResult: validation.Reject(domain.RejectPlaceholderTitle),
		},
		{
			name: "provider top-page title",
			extraction: &domain.RawExtraction{
				Provider:     "fanza",
				ProviderCode: "ssis00865",
				Title:        "アダルト動画・エロ動画 FANZA",
			},
			expectedResult: validation.Reject(domain.RejectTopPageTitle),
		},
		{
			name: "global age gate title",
			extraction: &domain.RawExtraction{
				Provider:     "duga",
				ProviderCode: "glory-4321",
				Title:        "年齢認証 | DUGA",
			},
			expectedResult: validation.Reject(domain.RejectTopPageTitle),
		},
		{
			name: "top-page title wins over boilerplate description",
			extraction: &domain.RawExtraction{
				Provider:     "mgs",
				ProviderCode: "259LUXU-1234",
				Title:        "エロ動画・アダルトビデオ -MGS動画",
				Description:  "MGS動画は、プレステージグループが運営する",
			},
			expectedResult: validation.Reject(domain.RejectTopPageTitle),
		},
		{
			name: "another provider's signature does not apply",
			extraction: &domain.RawExtraction{
				Provider:     "duga",
				ProviderCode: "glory-4321",
				Title:        "DMM.R18 特集 完全版の記録",
			},
			expectedResult: validation.Accept(),
		},
		{
			name: "title too short",
			extraction: &domain.RawExtraction{
				Provider:     "heyzo",
				ProviderCode: "0123",
				Title:        "人妻の夜",
			},
			expectedResult: validation.Reject(domain.RejectTitleTooShort),
		},
		{
			name: "five runes is long enough",
			extraction: &domain.RawExtraction{
				Provider:     "heyzo",
				ProviderCode: "0123",
				Title:        "人妻の夜会",
			},
			expectedResult: validation.Accept(),
		},
		{
			name: "global boilerplate description",
			extraction: &domain.RawExtraction{
				Provider:     "sokmil",
				ProviderCode: "abc123",
				Title:        "週末だけの秘密の関係",
				Description:  "18歳未満の方のアクセスは固くお断りします。",
			},
			expectedResult: validation.Reject(domain.RejectBoilerplateDescription),
		},
		{
			name: "provider boilerplate description",
			extraction: &domain.RawExtraction{
				Provider:     "fc2",
				ProviderCode: "1234567",
				Title:        "週末だけの秘密の関係",
				Description:  "FC2コンテンツマーケットは、個人や法人が制作したコンテンツを販売",
			},
			expectedResult: validation.Reject(domain.RejectBoilerplateDescription),
		},
		{
			name: "unknown provider falls back to global patterns",
			extraction: &domain.RawExtraction{
				Provider:     "newsite",
				ProviderCode: "xyz-001",
				Title:        "Just a moment...",
			},
			expectedResult: validation.Reject(domain.RejectTopPageTitle),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedResult, v.Validate(tt.extraction))
		})
	}
}

func TestValidator_DetectRedirect(t *testing.T) {
	v := newValidator()
	const detail = "https://www.dmm.co.jp/digital/videoa/-/detail/=/cid=ssis00865/"

	tests := []struct {
		name           string
		provider       string
		requestedURL   string
		finalURL       string
		expectedResult validation.Result
	}{
		{
			name:           "same page",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       detail,
			expectedResult: validation.Accept(),
		},
		{
			name:           "host comparison ignores case and www",
			provider:       "fanza",
			requestedURL:   "https://dmm.co.jp/digital/videoa/-/detail/=/cid=ssis00865/",
			finalURL:       "https://WWW.DMM.CO.JP/digital/videoa/-/detail/=/cid=ssis00865/",
			expectedResult: validation.Accept(),
		},
		{
			name:           "different host",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "https://www.example.com/digital/videoa/-/detail/=/cid=ssis00865/",
			expectedResult: validation.Reject(domain.RejectRedirectHost),
		},
		{
			name:           "deep link landed on site root",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "https://www.dmm.co.jp/",
			expectedResult: validation.Reject(domain.RejectRedirectRoot),
		},
		{
			name:           "root requested and root reached",
			provider:       "fanza",
			requestedURL:   "https://www.dmm.co.jp/",
			finalURL:       "https://www.dmm.co.jp",
			expectedResult: validation.Accept(),
		},
		{
			name:           "provider listing path",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "https://www.dmm.co.jp/digital/videoa/-/list/=/article=actress/",
			expectedResult: validation.Reject(domain.RejectRedirectListing),
		},
		{
			name:           "age gate",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "https://www.dmm.co.jp/age_check/=/declared=yes/?rurl=https%3A%2F%2Fwww.dmm.co.jp%2F",
			expectedResult: validation.Reject(domain.RejectRedirectListing),
		},
		{
			name:           "search page",
			provider:       "mgs",
			requestedURL:   "https://www.mgstage.com/product/product_detail/259LUXU-1234/",
			finalURL:       "https://www.mgstage.com/search/cSearch.php?search_word=luxu",
			expectedResult: validation.Reject(domain.RejectRedirectListing),
		},
		{
			name:           "unparseable final url",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "://broken",
			expectedResult: validation.Reject(domain.RejectRedirectUnparseable),
		},
		{
			name:           "final url without host",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "not a url",
			expectedResult: validation.Reject(domain.RejectRedirectUnparseable),
		},
		{
			name:           "no final url",
			provider:       "fanza",
			requestedURL:   detail,
			finalURL:       "",
			expectedResult: validation.Accept(),
		},
		{
			name:           "missing requested url uses provider host",
			provider:       "fanza",
			requestedURL:   "",
			finalURL:       "https://www.example.com/item/1",
			expectedResult: validation.Reject(domain.RejectRedirectHost),
		},
		{
			name:           "missing requested url on provider host",
			provider:       "fanza",
			requestedURL:   "",
			finalURL:       detail,
			expectedResult: validation.Accept(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedResult, v.DetectRedirect(tt.provider, tt.requestedURL, tt.finalURL))
		})
	}
}
