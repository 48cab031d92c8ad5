package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/kiprotich-dev/lingua_connect/configs"
	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
)

// GenerateCreditReceipt renders a PDF receipt for a settled credit purchase,
// uploads it and stores the URL on the transaction. Meant to run in a
// goroutine after the checkout webhook settles.
func GenerateCreditReceipt(txn models.CreditTransaction) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", txn.UserID).Error; err != nil {
		log.Printf("🔥 Receipt skipped, purchaser not found: %v", err)
		return
	}

	htmlData, err := generateReceiptHTML(txn, user)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, txn.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt: %v", err)
		return
	}

	if err := database.DB.Model(&models.CreditTransaction{}).
		Where("id = ?", txn.ID).
		Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to store receipt URL for transaction %s: %v", txn.ID, err)
		return
	}
	log.Printf("✅ Receipt generated for transaction %s", txn.ID)
}

func generateReceiptHTML(txn models.CreditTransaction, user models.User) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	amount := ""
	currency := ""
	if txn.Amount != nil {
		amount = fmt.Sprintf("%.2f", *txn.Amount)
	}
	if txn.Currency != nil {
		currency = *txn.Currency
	}

	data := struct {
		TransactionID string
		FullName      string
		Email         string
		Date          string
		Credits       int
		Amount        string
		Currency      string
	}{
		TransactionID: txn.ID.String(),
		FullName:      user.FullName,
		Email:         user.Email,
		Date:          txn.CreatedAt.Format("January 2, 2006"),
		Credits:       txn.Credits,
		Amount:        amount,
		Currency:      currency,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, transactionID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s", transactionID),
		Folder:       "lingua_connect_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
