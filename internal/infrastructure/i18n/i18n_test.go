package i18n

import (
	"encoding/json"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"
)

// setupTestLocales monta catálogos em memória para testes
func setupTestLocales(t *testing.T) fstest.MapFS {
	t.Helper()

	return fstest.MapFS{
		"en.json": {Data: []byte(`{
  "welcome": "Welcome, {{.Name}}!",
  "user_created": "User created successfully",
  "error.user_not_found": "User not found"
}`)},
		"pt-BR.json": {Data: []byte(`{
  "welcome": "Bem-vindo, {{.Name}}!",
  "user_created": "Usuário criado com sucesso",
  "error.user_not_found": "Usuário não encontrado"
}`)},
		"es.json": {Data: []byte(`{
  "welcome": "¡Bienvenido, {{.Name}}!",
  "user_created": "Usuario creado exitosamente",
  "error.user_not_found": "Usuario no encontrado"
}`)},
	}
}

func TestNewService(t *testing.T) {
	t.Run("carrega traduções com sucesso", func(t *testing.T) {
		locales := setupTestLocales(t)

		service, err := NewService(locales, "en")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if service.GetDefaultLanguage() != "en" {
			t.Errorf("esperava idioma padrão 'en', obteve '%s'", service.GetDefaultLanguage())
		}

		supportedLangs := service.GetSupportedLanguages()
		if len(supportedLangs) != 3 {
			t.Errorf("esperava 3 idiomas suportados, obteve %d", len(supportedLangs))
		}
	})

	t.Run("erro quando não há catálogos", func(t *testing.T) {
		_, err := NewService(fstest.MapFS{}, "en")
		if err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})

	t.Run("erro quando catálogo não é JSON", func(t *testing.T) {
		_, err := NewService(fstest.MapFS{"en.json": {Data: []byte("{")}}, "en")
		if err == nil {
			t.Error("esperava erro de parse, obteve sucesso")
		}
	})

	t.Run("erro quando idioma padrão não existe", func(t *testing.T) {
		locales := setupTestLocales(t)

		_, err := NewService(locales, "fr")
		if err == nil {
			t.Error("esperava erro para idioma padrão inexistente, obteve sucesso")
		}
	})
}

func TestService_T(t *testing.T) {
	locales := setupTestLocales(t)
	service, err := NewService(locales, "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	t.Run("traduz mensagem simples em inglês", func(t *testing.T) {
		result := service.T("en", "user_created")
		expected := "User created successfully"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem simples em português", func(t *testing.T) {
		result := service.T("pt-BR", "user_created")
		expected := "Usuário criado com sucesso"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem com parâmetros", func(t *testing.T) {
		result := service.T("en", "welcome", map[string]interface{}{"Name": "John"})
		expected := "Welcome, John!"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz mensagem com parâmetros em português", func(t *testing.T) {
		result := service.T("pt-BR", "welcome", map[string]interface{}{"Name": "João"})
		expected := "Bem-vindo, João!"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("fallback para idioma padrão quando chave não existe no idioma solicitado", func(t *testing.T) {
		result := service.T("fr", "user_created")
		expected := "User created successfully" // Fallback para inglês
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("retorna chave quando tradução não existe", func(t *testing.T) {
		result := service.T("en", "chave.inexistente")
		expected := "chave.inexistente"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})
}

func TestService_IsLanguageSupported(t *testing.T) {
	locales := setupTestLocales(t)
	service, err := NewService(locales, "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	tests := []struct {
		lang     string
		expected bool
	}{
		{"en", true},
		{"pt-BR", true},
		{"es", true},
		{"fr", false},
		{"de", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			result := service.IsLanguageSupported(tt.lang)
			if result != tt.expected {
				t.Errorf("para idioma '%s', esperava %v, obteve %v", tt.lang, tt.expected, result)
			}
		})
	}
}

func TestService_ThreadSafety(t *testing.T) {
	locales := setupTestLocales(t)
	service, err := NewService(locales, "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	// Executar traduções concorrentemente
	var wg sync.WaitGroup
	iterations := 100

	for i := 0; i < iterations; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			_ = service.T("en", "welcome", map[string]interface{}{"Name": "Test"})
		}()

		go func() {
			defer wg.Done()
			_ = service.T("pt-BR", "user_created")
		}()

		go func() {
			defer wg.Done()
			_ = service.IsLanguageSupported("en")
		}()
	}

	// Se houver race condition, este teste falhará com -race flag
	wg.Wait()
}

func TestEmbeddedLocales(t *testing.T) {
	service, err := NewDefaultService("pt-BR")
	if err != nil {
		t.Fatalf("falha ao carregar catálogos embutidos: %v", err)
	}

	if !service.IsLanguageSupported("pt-BR") || !service.IsLanguageSupported("en") {
		t.Fatalf("esperava pt-BR e en, obteve %v", service.GetSupportedLanguages())
	}

	t.Run("catálogos possuem as mesmas chaves", func(t *testing.T) {
		keys := func(name string) map[string]string {
			data, err := fs.ReadFile(Locales(), name)
			if err != nil {
				t.Fatalf("falha ao ler %s: %v", name, err)
			}
			var m map[string]string
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatalf("falha ao parsear %s: %v", name, err)
			}
			return m
		}

		pt, en := keys("pt-BR.json"), keys("en.json")
		for k := range pt {
			if _, ok := en[k]; !ok {
				t.Errorf("chave %q ausente em en.json", k)
			}
		}
		for k := range en {
			if _, ok := pt[k]; !ok {
				t.Errorf("chave %q ausente em pt-BR.json", k)
			}
		}
	})

	t.Run("interpola parâmetros de erro", func(t *testing.T) {
		got := service.T("pt-BR", "error.route_not_found", map[string]interface{}{"Path": "/x"})
		if got != "Rota /x não encontrada." {
			t.Errorf("obteve %q", got)
		}
	})
}
