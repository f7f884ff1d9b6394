// Package repository define las entidades del marketplace y los contratos de persistencia.
//
// Estas interfaces son independientes del almacenamiento subyacente. Las
// implementaciones concretas viven en internal/store:
//
//	┌─────────────────────────────────────────────────────┐
//	│           Services / Controllers                    │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│        StoreRepository, ProductRepository           │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	         ┌──────────────┼──────────────┐
//	         ▼              ▼              ▼
//	┌─────────────┐  ┌─────────────┐  ┌─────────────┐
//	│   store/    │  │   store/    │  │   store/    │
//	│     pg      │  │   memory    │  │   cached    │
//	└─────────────┘  └─────────────┘  └─────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Errores de dominio están en errors.go
//   - Las búsquedas por e-mail no distinguen mayúsculas
package repository
