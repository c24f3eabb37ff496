package image

import (
	"fmt"
	"strings"
)

const defaultDescriptionLine = "Make it look premium and commercial."

// BuildMockupPrompt converts a category and optional styling hint into the
// instruction sent alongside the uploaded artwork.
func BuildMockupPrompt(category, description string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		category = "product"
	}

	detail := defaultDescriptionLine
	if desc := strings.TrimSpace(description); desc != "" {
		detail = "User specific details: " + desc
	}

	lines := []string{
		fmt.Sprintf("Create a high-quality, photorealistic professional product mockup of a %s.", category),
		"",
		"INSTRUCTIONS:",
		fmt.Sprintf("1. Apply the design provided in the input image onto the %s.", category),
		fmt.Sprintf("2. The design must be warped and blended correctly to match the perspective, lighting, and texture of the %s.", category),
		"3. The background should be clean, modern, and neutral (studio lighting) unless specified otherwise.",
		"4. " + detail,
		"5. Do not include any text, watermarks, or UI elements. Focus solely on the product photography.",
	}
	return strings.Join(lines, "\n")
}
