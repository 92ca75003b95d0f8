/*
Copyright © 2025 dfop02

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/dfop02/lokyll/internal/translator"
)

// buildServices constructs the translation service chain from CLI
// parameters, preserving the order the user listed. ollamaModels may be
// nil to use the defaults.
func buildServices(serviceNames []string, ollamaBaseURL, systranAPIKey, mymemoryEmailAddr string, ollamaModels []string) ([]translator.TranslationService, error) {
	var list []translator.TranslationService

	for _, name := range serviceNames {
		switch name {
		case "google":
			list = append(list, translator.NewGoogleService())
		case "systran":
			list = append(list, translator.NewSystranService(systranAPIKey))
		case "mymemory":
			list = append(list, translator.NewMyMemoryService(mymemoryEmailAddr))
		case "ollama":
			list = append(list, translator.NewOllamaTranslator(ollamaBaseURL, ollamaModels))
		default:
			fmt.Fprintf(os.Stderr, "Unknown service: %s, skipping\n", name)
		}
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("no valid services configured")
	}
	return list, nil
}
