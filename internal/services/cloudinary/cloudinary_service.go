package cloudinary

import (
	"fmt"
	"log"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/rajivgeraev/flippy-motors/internal/config"
)

// CardTransformation миниатюра для карточки автомобиля
const CardTransformation = "c_fill,g_auto,w_480,h_320,q_auto,f_auto"

// CloudinaryService строит URL миниатюр через fetch-доставку Cloudinary.
// Без настроек возвращает исходные URL.
type CloudinaryService struct {
	cld *cld.Cloudinary
}

// NewCloudinaryService создает новый экземпляр CloudinaryService
func NewCloudinaryService(cfg *config.Config) *CloudinaryService {
	if !cfg.CloudinaryConfig.Enabled() {
		return &CloudinaryService{}
	}

	c, err := cld.NewFromParams(cfg.CloudinaryConfig.CloudName, cfg.CloudinaryConfig.APIKey, cfg.CloudinaryConfig.APISecret)
	if err != nil {
		log.Printf("⚠️ Cloudinary не настроен, используем исходные изображения: %v", err)
		return &CloudinaryService{}
	}
	return &CloudinaryService{cld: c}
}

// Thumbnail возвращает URL миниатюры для удалённого изображения
func (s *CloudinaryService) Thumbnail(imageURL string) string {
	if s == nil || s.cld == nil || !isRemote(imageURL) {
		return imageURL
	}

	thumb, err := s.thumbnail(imageURL)
	if err != nil {
		log.Printf("⚠️ Ошибка построения миниатюры %s: %v", imageURL, err)
		return imageURL
	}
	return thumb
}

func (s *CloudinaryService) thumbnail(imageURL string) (string, error) {
	img, err := s.cld.Image(imageURL)
	if err != nil {
		return "", fmt.Errorf("ошибка создания ассета: %w", err)
	}
	img.DeliveryType = api.Fetch
	img.Transformation = CardTransformation
	return img.String()
}

func isRemote(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
