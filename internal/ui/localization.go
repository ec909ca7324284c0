package ui

import "sort"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyInputFile          = "input_file"
	KeyOutputDirectory    = "output_directory"
	KeyServices           = "services"
	KeySelectAll          = "select_all"
	KeySelectNone         = "select_none"
	KeyConvert            = "convert"
	KeyStop               = "stop"
	KeyOpenOutput         = "open_output"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyLunePath           = "lune_path"
	KeyScriptPath         = "script_path"
	KeyAutoDetect         = "auto_detect"
	KeyAutoReveal         = "auto_reveal"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySelectInput        = "select_input"
	KeySelectOutput       = "select_output"
	KeyOutputLog          = "output_log"
	KeySettingsSaved      = "settings_saved"
	KeySuccess            = "success"
	KeyConversionComplete = "conversion_complete"
	KeyConversionStopped  = "conversion_stopped"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyLuneMissingTitle   = "lune_missing_title"
	KeyLuneMissing        = "lune_missing"
	KeyInstallingLune     = "installing_lune"
	KeyNoServices         = "no_services"
	KeyRuntimeStatus      = "runtime_status"
	KeyRuntimeNotFound    = "runtime_not_found"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// LanguageCodes returns the available language codes in sorted order
func (l *Localization) LanguageCodes() []string {
	languages := l.GetAvailableLanguages()
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Rblx 2 Rojo",
		KeyInputFile:          "Roblox File",
		KeyOutputDirectory:    "Output Directory",
		KeyServices:           "Services",
		KeySelectAll:          "Select all",
		KeySelectNone:         "Select none",
		KeyConvert:            "Convert",
		KeyStop:               "Stop",
		KeyOpenOutput:         "Open Output Folder",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyLunePath:           "Lune Path",
		KeyScriptPath:         "Conversion Script",
		KeyAutoDetect:         "Auto-detect",
		KeyAutoReveal:         "Open output folder after conversion",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySelectInput:        "Select a .rbxl, .rbxm, .rbxlx or .rbxmx file",
		KeySelectOutput:       "Select output directory",
		KeyOutputLog:          "Output",
		KeySettingsSaved:      "Settings saved successfully!",
		KeySuccess:            "Success",
		KeyConversionComplete: "Conversion complete!\nOutput: %s",
		KeyConversionStopped:  "Conversion stopped",
		KeyErrorOpeningFolder: "Error opening folder",
		KeyLuneMissingTitle:   "Lune Not Found",
		KeyLuneMissing:        "Lune is required for the conversion but was not found.\nDownload and install it now?",
		KeyInstallingLune:     "Installing Lune...",
		KeyNoServices:         "Select at least one service",
		KeyRuntimeStatus:      "Lune %s at %s",
		KeyRuntimeNotFound:    "Lune not installed",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Rblx 2 Rojo",
		KeyInputFile:          "Файл Roblox",
		KeyOutputDirectory:    "Папка вывода",
		KeyServices:           "Сервисы",
		KeySelectAll:          "Выбрать все",
		KeySelectNone:         "Снять все",
		KeyConvert:            "Конвертировать",
		KeyStop:               "Стоп",
		KeyOpenOutput:         "Открыть папку вывода",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyLunePath:           "Путь к Lune",
		KeyScriptPath:         "Скрипт конвертации",
		KeyAutoDetect:         "Автоопределение",
		KeyAutoReveal:         "Открывать папку после конвертации",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySelectInput:        "Выберите файл .rbxl, .rbxm, .rbxlx или .rbxmx",
		KeySelectOutput:       "Выберите папку вывода",
		KeyOutputLog:          "Вывод",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeySuccess:            "Готово",
		KeyConversionComplete: "Конвертация завершена!\nПапка: %s",
		KeyConversionStopped:  "Конвертация остановлена",
		KeyErrorOpeningFolder: "Ошибка открытия папки",
		KeyLuneMissingTitle:   "Lune не найден",
		KeyLuneMissing:        "Для конвертации нужен Lune, но он не найден.\nСкачать и установить сейчас?",
		KeyInstallingLune:     "Установка Lune...",
		KeyNoServices:         "Выберите хотя бы один сервис",
		KeyRuntimeStatus:      "Lune %s: %s",
		KeyRuntimeNotFound:    "Lune не установлен",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Rblx 2 Rojo",
		KeyInputFile:          "Arquivo Roblox",
		KeyOutputDirectory:    "Diretório de Saída",
		KeyServices:           "Serviços",
		KeySelectAll:          "Selecionar todos",
		KeySelectNone:         "Limpar seleção",
		KeyConvert:            "Converter",
		KeyStop:               "Parar",
		KeyOpenOutput:         "Abrir Pasta de Saída",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyLunePath:           "Caminho do Lune",
		KeyScriptPath:         "Script de Conversão",
		KeyAutoDetect:         "Detectar automaticamente",
		KeyAutoReveal:         "Abrir pasta de saída após a conversão",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Navegar",
		KeySelectInput:        "Selecione um arquivo .rbxl, .rbxm, .rbxlx ou .rbxmx",
		KeySelectOutput:       "Selecione o diretório de saída",
		KeyOutputLog:          "Saída",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeySuccess:            "Sucesso",
		KeyConversionComplete: "Conversão concluída!\nSaída: %s",
		KeyConversionStopped:  "Conversão interrompida",
		KeyErrorOpeningFolder: "Erro ao abrir pasta",
		KeyLuneMissingTitle:   "Lune Não Encontrado",
		KeyLuneMissing:        "O Lune é necessário para a conversão, mas não foi encontrado.\nBaixar e instalar agora?",
		KeyInstallingLune:     "Instalando Lune...",
		KeyNoServices:         "Selecione pelo menos um serviço",
		KeyRuntimeStatus:      "Lune %s em %s",
		KeyRuntimeNotFound:    "Lune não instalado",
	}
}
