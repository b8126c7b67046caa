package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/fathallah7/health-clinic/configs"
	"github.com/gofiber/fiber/v2"
)

const productImageFolder = "clinic_products"

// GenerateUploadSignature creates a signed-upload payload so the admin
// frontend can push product images straight to Cloudinary.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to initialize Cloudinary")
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to parse Cloudinary URL")
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: productImageFolder,
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to prepare signature params")
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to sign upload params")
	}

	return success(c, fiber.StatusOK, "Upload signature", fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    productImageFolder,
	})
}
