package scheduling

import "time"

// Overlaps aplica el test de intervalos semiabiertos [s1,e1) y [s2,e2):
// hay superposición sii s1 < e2 && e1 > s2. Dos intervalos que solo
// comparten un extremo NO se superponen.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// OverlapsHM es el mismo test sobre horas "15:04" del mismo día.
// La comparación lexicográfica es correcta con cero a la izquierda.
func OverlapsHM(s1, e1, s2, e2 string) bool {
	return s1 < e2 && e1 > s2
}

// CombineDateTime arma el instante para fecha "2006-01-02" + hora "15:04"
// en el huso dado.
func CombineDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, loc)
}

// AddMinutesHM devuelve la hora "15:04" resultante de sumar minutos.
// No cruza medianoche: la agenda del salón nunca lo hace.
func AddMinutesHM(hm string, minutes int) string {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return hm
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}
