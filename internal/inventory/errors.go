package inventory

import "errors"

// Çekirdek hata taksonomisi. Bütün hatalar deterministik ve çağıran
// kaynaklı; retry edilebilir bir hata türü yok.
var (
	// ErrNotFound: Bilinmeyen parti/ürün referansı.
	ErrNotFound = errors.New("kayıt bulunamadı")

	// ErrAlreadyDepleted: Tükenmiş partiye ikinci commit denemesi.
	// Üst katmanda bir sıralama hatasına işaret eder, tekrar denenmez.
	ErrAlreadyDepleted = errors.New("parti zaten tükenmiş")

	// ErrAlreadyExists: Aynı ID ile ikinci parti kaydı.
	ErrAlreadyExists = errors.New("kayıt zaten mevcut")

	// ErrInvalidDelta: Bozuk stok hareketi (boş ürün ID, NaN/Inf miktar,
	// sıfır/negatif satış adedi). Hiçbir mutasyon yapılmadan reddedilir.
	ErrInvalidDelta = errors.New("geçersiz stok hareketi")

	// ErrNegativeWeight: Operatörün girdiği fiili ağırlık negatif.
	// Defterin sıfıra kırpma politikasından farklı: girdi hatasıdır,
	// sessizce kırpılmaz, reddedilir.
	ErrNegativeWeight = errors.New("ağırlık negatif olamaz")

	// ErrInvalidRecipe: Randıman oranı (0,1] dışında veya oran toplamı 1'i
	// aşıyor. Reçete yükleme/oluşturma anında reddedilir, commit'te değil.
	ErrInvalidRecipe = errors.New("geçersiz reçete")
)
